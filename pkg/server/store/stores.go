package store

import "github.com/doodlesbykumbi/swapi-in-go/pkg/model"

// Stores groups every store the HTTP endpoints depend on
type Stores struct {
	Characters CollectionStore[model.Character]
	Species    CollectionStore[model.Species]
	Planets    CollectionStore[model.Planet]
	Films      CollectionStore[model.Film]
	Starships  CollectionStore[model.Starship]
	Vehicles   CollectionStore[model.Vehicle]
	Users      UsersStore
	Health     HealthStore
}
