package endpoints

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

var errUsernameTaken = errors.NewConflictError("users", "username", "username already taken", nil)

// WhoamiResponse is returned by GET /users/me
type WhoamiResponse struct {
	User model.UserRepr `json:"user"`
}

// fieldError is a 422 with one of the fixed registration messages
type fieldError struct {
	message string
}

func (e *fieldError) Error() string { return e.message }

func missingField(name string) error {
	return &fieldError{"Missing field: " + name}
}

func incorrectType(name string) error {
	return &fieldError{"Incorrect field type: " + name}
}

func incorrectLength(name string) error {
	return &fieldError{"Incorrect field length: " + name}
}

// respondWithFieldError sends registration validation failures as 422
func respondWithFieldError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *fieldError
	if errors.As(err, &fe) {
		respondWithMessage(w, http.StatusUnprocessableEntity, fe.message)
		return
	}
	respondWithError(w, r, err)
}

// RegisterUsersEndpoints mounts registration, who-am-I and user CRUD.
// GET /users, which lists every account, is only mounted with debug_routes.
func RegisterUsersEndpoints(s *server.Server) {
	users := s.Users
	limit := s.Config.MaxRequestBodyBytes
	basicAuth := middleware.BasicAuth(users)

	// /users/me before /users/{id} so "me" is never taken as an id
	s.Router.Handle("/users/me", basicAuth(handleWhoami())).Methods("GET")

	s.Router.HandleFunc("/users", handleRegister(users, limit)).Methods("POST")
	if s.Config.DebugRoutes {
		s.Router.HandleFunc("/users", handleListUsers(users)).Methods("GET")
	}
	s.Router.HandleFunc("/users/{id}", handleGetUser(users)).Methods("GET")
	s.Router.Handle("/users/{id}", basicAuth(handleUpdateUser(users, limit))).Methods("PUT")
	s.Router.Handle("/users/{id}", basicAuth(handleDeleteUser(users))).Methods("DELETE")
}

func handleRegister(users store.UsersStore, limit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readBody(w, r, limit)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			respondWithMessage(w, http.StatusBadRequest, "No request body")
			return
		}
		body, err := decodeObject(data)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		username, err := requiredString(body, "username", false)
		if err != nil {
			respondWithFieldError(w, r, err)
			return
		}
		username = strings.TrimSpace(username)
		password, err := requiredString(body, "password", true)
		if err != nil {
			respondWithFieldError(w, r, err)
			return
		}
		password = strings.TrimSpace(password)
		firstName, err := optionalString(body, "firstName")
		if err != nil {
			respondWithFieldError(w, r, err)
			return
		}
		lastName, err := optionalString(body, "lastName")
		if err != nil {
			respondWithFieldError(w, r, err)
			return
		}

		event := audit.UserCreateEvent{Username: username, ClientIP: middleware.ClientIP(r)}

		taken, err := users.CountByUsername(r.Context(), username)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if taken > 0 {
			event.ErrorMessage = errUsernameTaken.Error()
			audit.Log(event)
			respondWithError(w, r, errUsernameTaken)
			return
		}

		hash, err := authn.HashPassword(password)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		user := &model.User{
			Username:     username,
			PasswordHash: hash,
			FirstName:    firstName,
			LastName:     lastName,
		}
		if err := users.Insert(r.Context(), user); err != nil {
			if errors.IsAlreadyExists(err) {
				event.ErrorMessage = err.Error()
				audit.Log(event)
			}
			respondWithError(w, r, err)
			return
		}

		event.UserID = user.ID
		event.Success = true
		audit.Log(event)
		respondWithJSON(w, http.StatusCreated, user.APIRepr())
	}
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			respondWithError(w, r, errors.ErrUnauthorized)
			return
		}

		audit.Log(audit.WhoamiEvent{
			UserID:   user.ID,
			Username: user.Username,
			ClientIP: middleware.ClientIP(r),
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, WhoamiResponse{User: user.APIRepr()})
	}
}

func handleListUsers(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := users.FindAll(r.Context())
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		reprs := make([]model.UserRepr, 0, len(all))
		for i := range all {
			reprs = append(reprs, all[i].APIRepr())
		}
		respondWithJSON(w, http.StatusOK, reprs)
	}
}

func handleGetUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := users.FindByID(r.Context(), pathID(r))
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user.APIRepr())
	}
}

func handleUpdateUser(users store.UsersStore, limit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		caller, ok := middleware.UserFromContext(r.Context())
		if !ok {
			respondWithError(w, r, errors.ErrUnauthorized)
			return
		}
		if caller.ID != id {
			respondWithError(w, r, errors.ErrForbidden)
			return
		}

		data, err := readBody(w, r, limit)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		body, err := decodeObject(data)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if bid, ok := bodyID(body); !ok || bid != id {
			respondWithMessage(w, http.StatusBadRequest, "Request path id and request body id values must match")
			return
		}

		patch, fields, err := userPatch(body)
		if err != nil {
			respondWithFieldError(w, r, err)
			return
		}

		updated, err := users.UpdateByID(r.Context(), id, patch, fields)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		if _, changed := body["password"]; changed {
			audit.Log(audit.PasswordEvent{
				UserID:   updated.ID,
				Username: updated.Username,
				ClientIP: middleware.ClientIP(r),
				Success:  true,
			})
		}
		respondWithJSON(w, http.StatusCreated, updated.APIRepr())
	}
}

func handleDeleteUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		caller, ok := middleware.UserFromContext(r.Context())
		if !ok {
			respondWithError(w, r, errors.ErrUnauthorized)
			return
		}
		if caller.ID != id {
			respondWithError(w, r, errors.ErrForbidden)
			return
		}

		if err := users.DeleteByID(r.Context(), id); err != nil {
			respondWithError(w, r, err)
			return
		}
		respondNoContent(w)
	}
}

// userPatch validates the updatable user fields present in body and
// returns them as a patch plus the field list for the store. A password
// is trimmed and hashed before it reaches the patch.
func userPatch(body map[string]json.RawMessage) (*model.User, []string, error) {
	patch := &model.User{}
	var fields []string

	if _, ok := body["username"]; ok {
		username, err := requiredString(body, "username", false)
		if err != nil {
			return nil, nil, err
		}
		patch.Username = strings.TrimSpace(username)
		fields = append(fields, "username")
	}
	if _, ok := body["firstName"]; ok {
		firstName, err := optionalString(body, "firstName")
		if err != nil {
			return nil, nil, err
		}
		patch.FirstName = firstName
		fields = append(fields, "firstName")
	}
	if _, ok := body["lastName"]; ok {
		lastName, err := optionalString(body, "lastName")
		if err != nil {
			return nil, nil, err
		}
		patch.LastName = lastName
		fields = append(fields, "lastName")
	}
	if _, ok := body["password"]; ok {
		password, err := requiredString(body, "password", true)
		if err != nil {
			return nil, nil, err
		}
		hash, err := authn.HashPassword(strings.TrimSpace(password))
		if err != nil {
			return nil, nil, err
		}
		patch.PasswordHash = hash
		fields = append(fields, "password_hash")
	}
	return patch, fields, nil
}

// requiredString validates a mandatory string field. Blank values are
// rejected but returned untrimmed. With nullIsMissing, null and "" count as
// absent.
func requiredString(body map[string]json.RawMessage, name string, nullIsMissing bool) (string, error) {
	raw, ok := body[name]
	if !ok {
		return "", missingField(name)
	}
	if nullIsMissing && (string(raw) == "null" || string(raw) == `""`) {
		return "", missingField(name)
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil || string(raw) == "null" {
		return "", incorrectType(name)
	}
	if strings.TrimSpace(value) == "" {
		return "", incorrectLength(name)
	}
	return value, nil
}

func optionalString(body map[string]json.RawMessage, name string) (string, error) {
	raw, ok := body[name]
	if !ok || string(raw) == "null" {
		return "", nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", incorrectType(name)
	}
	return value, nil
}
