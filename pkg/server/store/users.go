package store

import (
	"context"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
)

// UsersStore abstracts account storage
type UsersStore interface {
	CollectionStore[model.User]

	// FindByUsername returns the user with the given username.
	// Returns errors.NotFoundError if it doesn't exist.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// CountByUsername returns how many users hold the username.
	CountByUsername(ctx context.Context, username string) (int64, error)
}
