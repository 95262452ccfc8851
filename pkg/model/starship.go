package model

import "github.com/lib/pq"

type Starship struct {
	Document
	Name                 string         `json:"name"`
	Model                string         `json:"model"`
	Manufacturer         string         `json:"manufacturer"`
	CostInCredits        string         `json:"cost_in_credits"`
	Length               string         `json:"length"`
	MaxAtmospheringSpeed string         `json:"max_atmosphering_speed"`
	Crew                 string         `json:"crew"`
	CargoCapacity        string         `json:"cargo_capacity"`
	Consumables          string         `json:"consumables"`
	HyperdriveRating     string         `json:"hyperdrive_rating"`
	MGLT                 string         `gorm:"column:mglt" json:"MGLT"`
	StarshipClass        string         `json:"starship_class"`
	Pilots               pq.StringArray `gorm:"type:text[]" json:"pilots"`
	Films                pq.StringArray `gorm:"type:text[]" json:"films"`
}

func (Starship) TableName() string {
	return "starships"
}

// StarshipRepr is the public representation of a Starship
type StarshipRepr struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Model            string `json:"model"`
	Manufacturer     string `json:"manufacturer"`
	CostInCredits    string `json:"cost_in_credits"`
	Length           string `json:"length"`
	Crew             string `json:"crew"`
	CargoCapacity    string `json:"cargo_capacity"`
	HyperdriveRating string `json:"hyperdrive_rating"`
	StarshipClass    string `json:"starship_class"`
}

func (s *Starship) APIRepr() StarshipRepr {
	return StarshipRepr{
		ID:               s.ID,
		Name:             s.Name,
		Model:            s.Model,
		Manufacturer:     s.Manufacturer,
		CostInCredits:    s.CostInCredits,
		Length:           s.Length,
		Crew:             s.Crew,
		CargoCapacity:    s.CargoCapacity,
		HyperdriveRating: s.HyperdriveRating,
		StarshipClass:    s.StarshipClass,
	}
}
