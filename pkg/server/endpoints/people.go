package endpoints

import (
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
)

var people = Resource[model.Character, model.CharacterRepr]{
	Name:      "people",
	Required:  []string{"name", "gender", "homeworld", "species"},
	Creatable: []string{"name", "gender", "homeworld", "species"},
	Updatable: []string{
		"name", "height", "mass", "hair_color", "eye_color", "birth_year",
		"gender", "homeworld", "species", "films", "vehicles", "starships",
		"edited", "url",
	},
	Project: (*model.Character).APIRepr,
}

// RegisterPeopleEndpoints mounts /people backed by the characters store
func RegisterPeopleEndpoints(s *server.Server) {
	people.Register(s, s.Characters)
}
