package endpoints

import (
	"net/http"
	"os"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/logging"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

// Version is reported by GET /status. SWAPI_VERSION_DISPLAY overrides it.
var Version = "0.1.0"

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

// RegisterStatusEndpoints registers the health endpoint
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s.Health)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(r.Context()); err != nil {
			logging.FromContext(r.Context()).Warn().Err(err).Msg("database connectivity check failed")
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:  "error",
				Message: "database connectivity check failed",
			})
			return
		}

		version := os.Getenv("SWAPI_VERSION_DISPLAY")
		if version == "" {
			version = Version
		}
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Version: version})
	}
}
