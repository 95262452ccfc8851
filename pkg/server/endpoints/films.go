package endpoints

import (
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
)

var filmRequired = []string{
	"title", "episode_id", "release_date", "director", "opening_crawl", "created",
}

var films = Resource[model.Film, model.FilmRepr]{
	Name:      "films",
	Required:  filmRequired,
	Creatable: filmRequired,
	Updatable: []string{
		"title", "episode_id", "opening_crawl", "director", "producer",
		"release_date", "characters", "planets", "starships", "vehicles",
		"species", "created", "edited", "url",
	},
	Project: (*model.Film).APIRepr,
}

func RegisterFilmsEndpoints(s *server.Server) {
	films.Register(s, s.Films)
}
