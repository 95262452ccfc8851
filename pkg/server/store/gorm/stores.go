package gorm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

// NewStores builds every store on a single database handle
func NewStores(db *gorm.DB) (*store.Stores, error) {
	characters, err := NewCollection[model.Character](db)
	if err != nil {
		return nil, fmt.Errorf("characters store: %w", err)
	}
	species, err := NewCollection[model.Species](db)
	if err != nil {
		return nil, fmt.Errorf("species store: %w", err)
	}
	planets, err := NewCollection[model.Planet](db)
	if err != nil {
		return nil, fmt.Errorf("planets store: %w", err)
	}
	films, err := NewCollection[model.Film](db)
	if err != nil {
		return nil, fmt.Errorf("films store: %w", err)
	}
	starships, err := NewCollection[model.Starship](db)
	if err != nil {
		return nil, fmt.Errorf("starships store: %w", err)
	}
	vehicles, err := NewCollection[model.Vehicle](db)
	if err != nil {
		return nil, fmt.Errorf("vehicles store: %w", err)
	}
	users, err := NewUsersStore(db)
	if err != nil {
		return nil, fmt.Errorf("users store: %w", err)
	}

	return &store.Stores{
		Characters: characters,
		Species:    species,
		Planets:    planets,
		Films:      films,
		Starships:  starships,
		Vehicles:   vehicles,
		Users:      users,
		Health:     NewHealthStore(db),
	}, nil
}
