package model

import "github.com/lib/pq"

type Planet struct {
	Document
	Name           string         `json:"name"`
	RotationPeriod string         `json:"rotation_period"`
	OrbitalPeriod  string         `json:"orbital_period"`
	Diameter       string         `json:"diameter"`
	Climate        string         `json:"climate"`
	Gravity        string         `json:"gravity"`
	Terrain        string         `json:"terrain"`
	SurfaceWater   string         `json:"surface_water"`
	Population     string         `json:"population"`
	Residents      pq.StringArray `gorm:"type:text[]" json:"residents"`
	Films          pq.StringArray `gorm:"type:text[]" json:"films"`
}

func (Planet) TableName() string {
	return "planets"
}

// PlanetRepr is the public representation of a Planet
type PlanetRepr struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Diameter     string   `json:"diameter"`
	Climate      string   `json:"climate"`
	Gravity      string   `json:"gravity"`
	Terrain      string   `json:"terrain"`
	Population   string   `json:"population"`
	SurfaceWater string   `json:"surface_water"`
	Residents    []string `json:"residents"`
	Films        []string `json:"films"`
}

func (p *Planet) APIRepr() PlanetRepr {
	return PlanetRepr{
		ID:           p.ID,
		Name:         p.Name,
		Diameter:     p.Diameter,
		Climate:      p.Climate,
		Gravity:      p.Gravity,
		Terrain:      p.Terrain,
		Population:   p.Population,
		SurfaceWater: p.SurfaceWater,
		Residents:    refs(p.Residents),
		Films:        refs(p.Films),
	}
}
