package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

// Resource describes one CRUD collection: its route, which body fields are
// required and accepted, and how a document is presented to clients.
type Resource[T any, R any] struct {
	// Name is the route segment and the collection name in messages
	Name string

	// Required fields must be present in a create body. They are checked
	// in order and the first one missing is reported.
	Required []string

	// Creatable fields are copied from a create body, everything else is dropped
	Creatable []string

	// Updatable fields may be set by an update body
	Updatable []string

	// Project builds the public representation of a document
	Project func(*T) R
}

// CountResponse is returned by GET /{resource}?count=true
type CountResponse struct {
	Count int64 `json:"count"`
}

// Register mounts the list, get, create, update and delete routes
func (res Resource[T, R]) Register(s *server.Server, docs store.CollectionStore[T]) {
	limit := s.Config.MaxRequestBodyBytes
	collection := "/" + res.Name
	document := collection + "/{id}"

	s.Router.HandleFunc(collection, res.handleList(docs)).Methods("GET")
	s.Router.HandleFunc(collection, res.handleCreate(docs, limit)).Methods("POST")
	s.Router.HandleFunc(document, res.handleGet(docs)).Methods("GET")
	s.Router.HandleFunc(document, res.handleUpdate(docs, limit)).Methods("PUT")
	s.Router.HandleFunc(document, res.handleDelete(docs)).Methods("DELETE")
}

func (res Resource[T, R]) handleList(docs store.CollectionStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("count") == "true" {
			count, err := docs.CountAll(r.Context())
			if err != nil {
				respondWithError(w, r, err)
				return
			}
			respondWithJSON(w, http.StatusOK, CountResponse{Count: count})
			return
		}

		all, err := docs.FindAll(r.Context())
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		reprs := make([]R, 0, len(all))
		for i := range all {
			reprs = append(reprs, res.Project(&all[i]))
		}
		respondWithJSON(w, http.StatusOK, reprs)
	}
}

func (res Resource[T, R]) handleGet(docs store.CollectionStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)

		doc, err := docs.FindByID(r.Context(), id)
		if err != nil {
			respondWithError(w, r, res.notFound(id, err))
			return
		}
		respondWithJSON(w, http.StatusOK, res.Project(doc))
	}
}

func (res Resource[T, R]) handleCreate(docs store.CollectionStore[T], limit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		for _, field := range res.Required {
			if _, ok := body[field]; !ok {
				respondWithError(w, r, errors.NewMissingFieldError(field))
				return
			}
		}

		doc, err := decodeFields[T](body, res.Creatable)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		if err := docs.Insert(r.Context(), doc); err != nil {
			respondWithError(w, r, err)
			return
		}

		res.audit(r, audit.OperationCreate, documentID(doc))
		respondWithJSON(w, http.StatusCreated, res.Project(doc))
	}
}

func (res Resource[T, R]) handleUpdate(docs store.CollectionStore[T], limit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)

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

		fields := presentFields(body, res.Updatable)
		patch, err := decodeFields[T](body, fields)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		updated, err := docs.UpdateByID(r.Context(), id, patch, fields)
		if err != nil {
			respondWithError(w, r, res.notFound(id, err))
			return
		}

		res.audit(r, audit.OperationUpdate, id)
		respondWithJSON(w, http.StatusCreated, res.Project(updated))
	}
}

func (res Resource[T, R]) handleDelete(docs store.CollectionStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)

		if err := docs.DeleteByID(r.Context(), id); err != nil {
			respondWithError(w, r, err)
			return
		}

		res.audit(r, audit.OperationDelete, id)
		respondNoContent(w)
	}
}

// notFound names the collection by its route rather than its table
func (res Resource[T, R]) notFound(id string, err error) error {
	if errors.IsNotFound(err) {
		return errors.NewNotFoundError(res.Name, id)
	}
	return err
}

func (res Resource[T, R]) audit(r *http.Request, operation audit.Operation, id string) {
	event := audit.DocumentEvent{
		ClientIP:   middleware.ClientIP(r),
		Operation:  operation,
		Collection: res.Name,
		DocumentID: id,
		Success:    true,
	}
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		event.UserID = user.ID
	}
	audit.Log(event)
}

// presentFields returns the allowed fields that occur in body, in allowed order
func presentFields(body map[string]json.RawMessage, allowed []string) []string {
	fields := make([]string, 0, len(allowed))
	for _, field := range allowed {
		if _, ok := body[field]; ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// decodeFields builds a T from the allowed fields of body. Scalars are cast
// to the field's shape first; a value that still does not fit, such as an
// object, is a validation error.
func decodeFields[T any](body map[string]json.RawMessage, allowed []string) (*T, error) {
	kinds := fieldKinds(reflect.TypeOf((*T)(nil)).Elem(), map[string]reflect.Kind{})

	filtered := make(map[string]json.RawMessage, len(allowed))
	for _, field := range allowed {
		if raw, ok := body[field]; ok {
			filtered[field] = coerceValue(raw, kinds[field])
		}
	}

	data, err := json.Marshal(filtered)
	if err != nil {
		return nil, err
	}

	doc := new(T)
	if err := json.Unmarshal(data, doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errors.NewValidationError(typeErr.Field, fmt.Sprintf("Invalid value for `%s`", typeErr.Field))
		}
		return nil, errors.NewValidationError("", "Malformed request body")
	}
	return doc, nil
}

// fieldKinds maps the JSON names of t's fields, embedded ones included, to
// their kinds
func fieldKinds(t reflect.Type, kinds map[string]reflect.Kind) map[string]reflect.Kind {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			fieldKinds(f.Type, kinds)
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		kinds[name] = f.Type.Kind()
	}
	return kinds
}

// coerceValue casts a JSON value toward a field of the given kind. Numbers
// and booleans become strings, and a single value given for a list becomes
// a one-element list. Anything else is returned untouched.
func coerceValue(raw json.RawMessage, kind reflect.Kind) json.RawMessage {
	if kind != reflect.String && kind != reflect.Slice {
		return raw
	}

	var value any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return raw
	}

	var cast any
	switch v := value.(type) {
	case []any:
		if kind != reflect.Slice {
			return raw
		}
		items := make([]any, len(v))
		for i, item := range v {
			if s, ok := scalarString(item); ok {
				items[i] = s
			} else {
				items[i] = item
			}
		}
		cast = items
	default:
		s, ok := scalarString(v)
		if !ok {
			return raw
		}
		cast = s
		if kind == reflect.Slice {
			cast = []string{s}
		}
	}

	data, err := json.Marshal(cast)
	if err != nil {
		return raw
	}
	return data
}

func scalarString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

func documentID(doc any) string {
	if d, ok := doc.(interface{ GetID() string }); ok {
		return d.GetID()
	}
	return ""
}
