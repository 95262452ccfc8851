package endpoints

import (
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
)

var starshipFields = []string{
	"name", "model", "manufacturer", "cost_in_credits", "length", "crew",
	"cargo_capacity", "hyperdrive_rating", "starship_class",
}

var starships = Resource[model.Starship, model.StarshipRepr]{
	Name:      "starships",
	Required:  starshipFields,
	Creatable: starshipFields,
	Updatable: starshipFields,
	Project:   (*model.Starship).APIRepr,
}

func RegisterStarshipsEndpoints(s *server.Server) {
	starships.Register(s, s.Starships)
}
