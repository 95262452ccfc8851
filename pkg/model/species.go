package model

import "github.com/lib/pq"

type Species struct {
	Document
	Name            string         `json:"name"`
	Classification  string         `json:"classification"`
	Designation     string         `json:"designation"`
	AverageHeight   string         `json:"average_height"`
	SkinColors      string         `json:"skin_colors"`
	HairColors      string         `json:"hair_colors"`
	EyeColors       string         `json:"eye_colors"`
	AverageLifespan string         `json:"average_lifespan"`
	Homeworld       string         `json:"homeworld"`
	Language        string         `json:"language"`
	People          pq.StringArray `gorm:"type:text[]" json:"people"`
	Films           pq.StringArray `gorm:"type:text[]" json:"films"`
}

func (Species) TableName() string {
	return "species"
}

// SpeciesRepr is the public representation of a Species
type SpeciesRepr struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Homeworld       string   `json:"homeworld"`
	Classification  string   `json:"classification"`
	Designation     string   `json:"designation"`
	AverageLifespan string   `json:"average_lifespan"`
	AverageHeight   string   `json:"average_height"`
	People          []string `json:"people"`
	URL             string   `json:"url"`
}

func (s *Species) APIRepr() SpeciesRepr {
	return SpeciesRepr{
		ID:              s.ID,
		Name:            s.Name,
		Homeworld:       s.Homeworld,
		Classification:  s.Classification,
		Designation:     s.Designation,
		AverageLifespan: s.AverageLifespan,
		AverageHeight:   s.AverageHeight,
		People:          refs(s.People),
		URL:             s.URL,
	}
}
