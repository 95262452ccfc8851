package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/logging"
)

const defaultMaxBodyBytes = 1 << 20

var (
	errBodyTooLarge = errors.New("Request body too large")
	errNotAnObject  = errors.NewValidationError("", "Request body must be a JSON object")
)

// MessageResponse is the body of every error response
type MessageResponse struct {
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, MessageResponse{Message: message})
}

// respondWithError maps err onto a status code. Anything outside the error
// taxonomy is logged and reported as a bare 500.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		respondWithMessage(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.IsValidationError(err):
		respondWithMessage(w, http.StatusBadRequest, err.Error())
	case errors.IsNotFound(err):
		respondWithMessage(w, http.StatusNotFound, err.Error())
	case errors.IsAlreadyExists(err):
		respondWithMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errors.ErrUnauthorized):
		respondWithMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, errors.ErrForbidden):
		respondWithMessage(w, http.StatusForbidden, "Forbidden")
	default:
		logging.FromContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondWithMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// readBody reads at most limit bytes of the request body
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}
	return data, nil
}

// decodeObject parses a JSON object body into its raw fields.
// An empty body is an empty object.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, errNotAnObject
	}
	return fields, nil
}

// pathID returns the decoded {id} route variable
func pathID(r *http.Request) string {
	id := mux.Vars(r)["id"]
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

// bodyID returns the id carried in a request body, if it is a string
func bodyID(fields map[string]json.RawMessage) (string, bool) {
	raw, ok := fields["id"]
	if !ok {
		return "", false
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", false
	}
	return id, true
}
