package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/logging"
)

// Realm is sent in the WWW-Authenticate challenge
const Realm = "swapi"

// BasicAuth returns middleware that authenticates the request with HTTP Basic
// credentials checked against users. The authenticated user is available to
// the next handler through UserFromContext.
func BasicAuth(users authn.UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				audit.Log(audit.AuthenticateEvent{
					ClientIP:     ClientIP(r),
					Success:      false,
					ErrorMessage: "missing or malformed Authorization header",
				})
				unauthorized(w)
				return
			}

			user, err := authn.VerifyCredentials(r.Context(), users, username, password)
			if err != nil {
				if errors.Is(err, authn.ErrInvalidCredentials) {
					audit.Log(audit.AuthenticateEvent{
						Username:     username,
						ClientIP:     ClientIP(r),
						Success:      false,
						ErrorMessage: err.Error(),
					})
					unauthorized(w)
					return
				}
				logging.FromContext(r.Context()).Error().Err(err).Str("username", username).Msg("credential lookup failed")
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			audit.Log(audit.AuthenticateEvent{
				Username: user.Username,
				ClientIP: ClientIP(r),
				Success:  true,
			})
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`"`)
	writeMessage(w, http.StatusUnauthorized, "Unauthorized")
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	response, _ := json.Marshal(map[string]string{"message": message})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
