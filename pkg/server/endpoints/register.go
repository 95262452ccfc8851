package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterUsersEndpoints(srv)

	RegisterPeopleEndpoints(srv)
	RegisterSpeciesEndpoints(srv)
	RegisterPlanetsEndpoints(srv)
	RegisterFilmsEndpoints(srv)
	RegisterStarshipsEndpoints(srv)
	RegisterVehiclesEndpoints(srv)

	srv.Router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithMessage(w, http.StatusNotFound, "Not Found")
	})
	srv.Router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}
