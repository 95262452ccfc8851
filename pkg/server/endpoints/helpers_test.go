package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/config"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/logging"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

func init() {
	authn.Cost = bcrypt.MinCost
	audit.SetEnabled(false)
}

type mockStores struct {
	characters *MockCollection[model.Character]
	species    *MockCollection[model.Species]
	planets    *MockCollection[model.Planet]
	films      *MockCollection[model.Film]
	starships  *MockCollection[model.Starship]
	vehicles   *MockCollection[model.Vehicle]
	users      *MockUsersStore
	health     *MockHealthStore
}

func (m *mockStores) assertExpectations(t *testing.T) {
	m.characters.AssertExpectations(t)
	m.species.AssertExpectations(t)
	m.planets.AssertExpectations(t)
	m.films.AssertExpectations(t)
	m.starships.AssertExpectations(t)
	m.vehicles.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.health.AssertExpectations(t)
}

// newMockServer registers every endpoint on a server backed by mock stores
func newMockServer(t *testing.T, configure ...func(*config.Config)) (*server.Server, *mockStores) {
	t.Helper()

	mocks := &mockStores{
		characters: &MockCollection[model.Character]{},
		species:    &MockCollection[model.Species]{},
		planets:    &MockCollection[model.Planet]{},
		films:      &MockCollection[model.Film]{},
		starships:  &MockCollection[model.Starship]{},
		vehicles:   &MockCollection[model.Vehicle]{},
		users:      &MockUsersStore{},
		health:     &MockHealthStore{},
	}
	stores := &store.Stores{
		Characters: mocks.characters,
		Species:    mocks.species,
		Planets:    mocks.planets,
		Films:      mocks.films,
		Starships:  mocks.starships,
		Vehicles:   mocks.vehicles,
		Users:      mocks.users,
		Health:     mocks.health,
	}

	cfg := &config.Config{MaxRequestBodyBytes: 1 << 20}
	for _, fn := range configure {
		fn(cfg)
	}

	srv := server.NewServer(cfg, stores, logging.Nop)
	RegisterAll(srv)
	t.Cleanup(func() { mocks.assertExpectations(t) })
	return srv, mocks
}

type requestOption func(*http.Request)

func withBasicAuth(username, password string) requestOption {
	return func(r *http.Request) {
		r.SetBasicAuth(username, password)
	}
}

func do(srv *server.Server, method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	return w
}

func decode[V any](t *testing.T, w *httptest.ResponseRecorder) V {
	t.Helper()
	var v V
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[MessageResponse](t, w).Message
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
