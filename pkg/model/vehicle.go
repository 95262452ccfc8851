package model

import "github.com/lib/pq"

type Vehicle struct {
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
	VehicleClass         string         `json:"vehicle_class"`
	Pilots               pq.StringArray `gorm:"type:text[]" json:"pilots"`
	Films                pq.StringArray `gorm:"type:text[]" json:"films"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// VehicleRepr is the public representation of a Vehicle
type VehicleRepr struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Model         string `json:"model"`
	Manufacturer  string `json:"manufacturer"`
	CostInCredits string `json:"cost_in_credits"`
	Length        string `json:"length"`
	Crew          string `json:"crew"`
}

func (v *Vehicle) APIRepr() VehicleRepr {
	return VehicleRepr{
		ID:            v.ID,
		Name:          v.Name,
		Model:         v.Model,
		Manufacturer:  v.Manufacturer,
		CostInCredits: v.CostInCredits,
		Length:        v.Length,
		Crew:          v.Crew,
	}
}
