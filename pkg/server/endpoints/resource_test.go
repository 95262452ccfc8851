package endpoints

import (
	"net/http"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/config"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
)

const newHopeBody = `{
	"title": "A New Hope",
	"episode_id": "4",
	"release_date": "1977-05-25",
	"director": "G. Lucas",
	"opening_crawl": "...",
	"created": "2023-01-01"
}`

func newHope() *model.Film {
	return &model.Film{
		Document:     model.Document{ID: "f-4", Created: "2023-01-01"},
		Title:        "A New Hope",
		EpisodeID:    "4",
		ReleaseDate:  "1977-05-25",
		Director:     "G. Lucas",
		OpeningCrawl: "...",
		Producer:     "G. Kurtz",
	}
}

func storeDown(collection string) error {
	return errors.WrapStore("find", collection, errors.New("connection refused"))
}

func TestCreateFilm(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.films.On("Insert", mock.AnythingOfType("*model.Film")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*model.Film).ID = "f-4"
		}).
		Return(nil)

	w := do(srv, http.MethodPost, "/films", newHopeBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	film := decode[model.FilmRepr](t, w)
	assert.Equal(t, model.FilmRepr{
		ID:           "f-4",
		Title:        "A New Hope",
		EpisodeID:    "4",
		ReleaseDate:  "1977-05-25",
		Director:     "G. Lucas",
		OpeningCrawl: "...",
		Created:      "2023-01-01",
	}, film)
}

func TestCreateDropsFieldsOutsideAllowList(t *testing.T) {
	srv, mocks := newMockServer(t)
	var stored *model.Character
	mocks.characters.On("Insert", mock.AnythingOfType("*model.Character")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*model.Character)
			stored.ID = "p-1"
		}).
		Return(nil)

	w := do(srv, http.MethodPost, "/people", `{
		"id": "chosen-by-client",
		"name": "Luke Skywalker",
		"gender": "male",
		"homeworld": "planets/1",
		"species": ["species/1", "species/1"],
		"height": "172",
		"films": ["films/1"]
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "p-1", stored.ID)
	assert.Empty(t, stored.Height)
	assert.Empty(t, stored.Films)

	person := decode[model.CharacterRepr](t, w)
	assert.Equal(t, "Luke Skywalker", person.Name)
	assert.Equal(t, []string{"species/1", "species/1"}, person.Species, "order and duplicates kept")
}

func TestCreateCastsScalars(t *testing.T) {
	srv, mocks := newMockServer(t)
	var stored *model.Character
	mocks.characters.On("Insert", mock.AnythingOfType("*model.Character")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*model.Character)
		}).
		Return(nil)

	w := do(srv, http.MethodPost, "/people", `{"name": "Luke", "gender": "male", "homeworld": 1, "species": "Human"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1", stored.Homeworld)
	assert.Equal(t, pq.StringArray{"Human"}, stored.Species)
	assert.Equal(t, []string{"Human"}, decode[model.CharacterRepr](t, w).Species)
}

func TestCreateCastsNumbersToStrings(t *testing.T) {
	srv, mocks := newMockServer(t)
	var stored *model.Film
	mocks.films.On("Insert", mock.AnythingOfType("*model.Film")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*model.Film)
		}).
		Return(nil)

	w := do(srv, http.MethodPost, "/films", `{
		"title": "A New Hope",
		"episode_id": 4,
		"release_date": "1977-05-25",
		"director": "G. Lucas",
		"opening_crawl": "...",
		"created": true
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "4", stored.EpisodeID)
	assert.Equal(t, "true", stored.Created)
}

func TestUpdateCastsListItems(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.planets.On("UpdateByID", "p-1",
		mock.MatchedBy(func(patch *model.Planet) bool {
			return assert.ObjectsAreEqual(pq.StringArray{"people/1", "2", "false"}, patch.Residents) &&
				patch.Population == "200000"
		}),
		[]string{"population", "residents"},
	).Return(&model.Planet{Document: model.Document{ID: "p-1"}}, nil)

	w := do(srv, http.MethodPut, "/planets/p-1", `{"id": "p-1", "population": 200000, "residents": ["people/1", 2, false]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateMissingRequiredField(t *testing.T) {
	for _, field := range filmRequired {
		t.Run(field, func(t *testing.T) {
			srv, _ := newMockServer(t)

			body := map[string]string{
				"title": "A New Hope", "episode_id": "4", "release_date": "1977-05-25",
				"director": "G. Lucas", "opening_crawl": "...", "created": "2023-01-01",
			}
			delete(body, field)

			w := do(srv, http.MethodPost, "/films", jsonBody(t, body))

			// No Insert expectation: the mock fails the test if it is called
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing `"+field+"` in request body", message(t, w))
		})
	}
}

func TestCreateReportsFirstMissingField(t *testing.T) {
	srv, _ := newMockServer(t)

	w := do(srv, http.MethodPost, "/starships", `{"name": "X-wing"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing `model` in request body", message(t, w))
}

func TestCreateRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"array body", `[1, 2]`, http.StatusBadRequest},
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"object for a string field", `{"name": "Yavin IV", "diameter": {"km": 10200}, "climate": "temperate", "gravity": "1", "terrain": "jungle", "population": "1000", "surface_water": "8", "residents": []}`, http.StatusBadRequest},
		{"object for a list field", `{"name": "Yavin IV", "diameter": "10200", "climate": "temperate", "gravity": "1", "terrain": "jungle", "population": "1000", "surface_water": "8", "residents": {"first": "people/1"}}`, http.StatusBadRequest},
		{"list for a string field", `{"name": ["Yavin", "IV"], "diameter": "10200", "climate": "temperate", "gravity": "1", "terrain": "jungle", "population": "1000", "surface_water": "8", "residents": []}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newMockServer(t)

			w := do(srv, http.MethodPost, "/planets", tt.body)

			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, message(t, w))
		})
	}
}

func TestCreateBodyTooLarge(t *testing.T) {
	srv, _ := newMockServer(t, func(cfg *config.Config) {
		cfg.MaxRequestBodyBytes = 64
	})

	w := do(srv, http.MethodPost, "/vehicles", `{"name": "`+strings.Repeat("x", 128)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCreateStoreFailure(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.films.On("Insert", mock.Anything).Return(errors.WrapStore("insert", "films", errors.New("connection reset")))

	w := do(srv, http.MethodPost, "/films", newHopeBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", message(t, w))
}

func TestListFilms(t *testing.T) {
	srv, mocks := newMockServer(t)
	empire := newHope()
	empire.ID, empire.Title, empire.EpisodeID = "f-5", "The Empire Strikes Back", "5"
	mocks.films.On("FindAll").Return([]model.Film{*newHope(), *empire}, nil)

	w := do(srv, http.MethodGet, "/films", "")

	assert.Equal(t, http.StatusOK, w.Code)
	films := decode[[]model.FilmRepr](t, w)
	if assert.Len(t, films, 2) {
		assert.Equal(t, "f-4", films[0].ID)
		assert.Equal(t, "The Empire Strikes Back", films[1].Title)
	}
	assert.NotContains(t, w.Body.String(), "producer", "projection hides non-public fields")
}

func TestListEmptyCollection(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.species.On("FindAll").Return(nil, nil)

	w := do(srv, http.MethodGet, "/species", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListCount(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.vehicles.On("CountAll").Return(int64(39), nil)

	w := do(srv, http.MethodGet, "/vehicles?count=true", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(39), decode[CountResponse](t, w).Count)
}

func TestListStoreFailure(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.starships.On("FindAll").Return(nil, storeDown("starships"))

	w := do(srv, http.MethodGet, "/starships", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", message(t, w))
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetFilm(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.films.On("FindByID", "f-4").Return(newHope(), nil)

	w := do(srv, http.MethodGet, "/films/f-4", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, newHope().APIRepr(), decode[model.FilmRepr](t, w))
}

func TestGetMissingDocument(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.characters.On("FindByID", "nope").Return(nil, errors.NewNotFoundError("characters", "nope"))

	w := do(srv, http.MethodGet, "/people/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "people with ID nope not found", message(t, w))
}

func TestGetStoreFailure(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.planets.On("FindByID", "p-1").Return(nil, storeDown("planets"))

	w := do(srv, http.MethodGet, "/planets/p-1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateFilm(t *testing.T) {
	srv, mocks := newMockServer(t)
	updated := newHope()
	updated.Director = "George Lucas"

	mocks.films.On("UpdateByID", "f-4",
		mock.MatchedBy(func(patch *model.Film) bool {
			return patch.Director == "George Lucas" && patch.Title == ""
		}),
		[]string{"director"},
	).Return(updated, nil)

	w := do(srv, http.MethodPut, "/films/f-4", `{"id": "f-4", "director": "George Lucas", "rating": "PG"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	film := decode[model.FilmRepr](t, w)
	assert.Equal(t, "George Lucas", film.Director)
	assert.Equal(t, "A New Hope", film.Title, "untouched fields keep their values")
}

func TestUpdateOnlyUpdatableFields(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.characters.On("UpdateByID", "p-1", mock.Anything, []string{"height", "films", "edited"}).
		Return(&model.Character{Document: model.Document{ID: "p-1"}, Name: "Luke"}, nil)

	w := do(srv, http.MethodPut, "/people/p-1", `{
		"id": "p-1",
		"edited": "2023-02-02",
		"films": ["films/1", "films/2"],
		"created": "rewritten",
		"height": "172"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateIDMismatch(t *testing.T) {
	tests := map[string]string{
		"mismatch":        `{"id": "f-5", "title": "x"}`,
		"missing body id": `{"title": "x"}`,
		"non-string id":   `{"id": 4, "title": "x"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv, _ := newMockServer(t)

			w := do(srv, http.MethodPut, "/films/f-4", body)

			// Returns before any store call
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Request path id and request body id values must match", message(t, w))
		})
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.vehicles.On("UpdateByID", "v-9", mock.Anything, []string{"crew"}).
		Return(nil, errors.NewNotFoundError("vehicles", "v-9"))

	w := do(srv, http.MethodPut, "/vehicles/v-9", `{"id": "v-9", "crew": "1"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "vehicles with ID v-9 not found", message(t, w))
}

func TestDelete(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.species.On("DeleteByID", "s-1").Return(nil).Twice()

	for i := 0; i < 2; i++ {
		w := do(srv, http.MethodDelete, "/species/s-1", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	}
}

func TestDeleteStoreFailure(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.starships.On("DeleteByID", "s-1").Return(errors.WrapStore("delete", "starships", errors.New("timeout")))

	w := do(srv, http.MethodDelete, "/starships/s-1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEveryResourceIsMounted(t *testing.T) {
	srv, mocks := newMockServer(t)
	mocks.characters.On("CountAll").Return(int64(1), nil)
	mocks.species.On("CountAll").Return(int64(2), nil)
	mocks.planets.On("CountAll").Return(int64(3), nil)
	mocks.films.On("CountAll").Return(int64(4), nil)
	mocks.starships.On("CountAll").Return(int64(5), nil)
	mocks.vehicles.On("CountAll").Return(int64(6), nil)

	for i, name := range []string{"people", "species", "planets", "films", "starships", "vehicles"} {
		w := do(srv, http.MethodGet, "/"+name+"?count=true", "")
		assert.Equal(t, http.StatusOK, w.Code, name)
		assert.Equal(t, int64(i+1), decode[CountResponse](t, w).Count, name)
	}
}
