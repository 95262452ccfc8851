package endpoints

import (
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
)

var speciesFields = []string{
	"name", "classification", "homeworld", "designation", "average_lifespan",
	"average_height", "people", "url",
}

var species = Resource[model.Species, model.SpeciesRepr]{
	Name:      "species",
	Required:  speciesFields,
	Creatable: speciesFields,
	Updatable: speciesFields,
	Project:   (*model.Species).APIRepr,
}

func RegisterSpeciesEndpoints(s *server.Server) {
	species.Register(s, s.Species)
}
