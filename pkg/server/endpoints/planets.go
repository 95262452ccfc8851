package endpoints

import (
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
)

var planetFields = []string{
	"name", "diameter", "climate", "gravity", "terrain", "population",
	"surface_water", "residents",
}

var planets = Resource[model.Planet, model.PlanetRepr]{
	Name:      "planets",
	Required:  planetFields,
	Creatable: planetFields,
	Updatable: planetFields,
	Project:   (*model.Planet).APIRepr,
}

func RegisterPlanetsEndpoints(s *server.Server) {
	planets.Register(s, s.Planets)
}
