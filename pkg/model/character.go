package model

import "github.com/lib/pq"

// Character is a person in the people collection
type Character struct {
	Document
	Name      string         `json:"name"`
	Height    string         `json:"height"`
	Mass      string         `json:"mass"`
	HairColor string         `json:"hair_color"`
	EyeColor  string         `json:"eye_color"`
	BirthYear string         `json:"birth_year"`
	Gender    string         `json:"gender"`
	Homeworld string         `json:"homeworld"`
	Films     pq.StringArray `gorm:"type:text[]" json:"films"`
	Species   pq.StringArray `gorm:"type:text[]" json:"species"`
	Vehicles  pq.StringArray `gorm:"type:text[]" json:"vehicles"`
	Starships pq.StringArray `gorm:"type:text[]" json:"starships"`
}

func (Character) TableName() string {
	return "characters"
}

// CharacterRepr is the public representation of a Character
type CharacterRepr struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Gender    string   `json:"gender"`
	Species   []string `json:"species"`
	Homeworld string   `json:"homeworld"`
	Created   string   `json:"created"`
}

func (c *Character) APIRepr() CharacterRepr {
	return CharacterRepr{
		ID:        c.ID,
		Name:      c.Name,
		Gender:    c.Gender,
		Species:   refs(c.Species),
		Homeworld: c.Homeworld,
		Created:   c.Created,
	}
}
