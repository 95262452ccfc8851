package store

import "context"

// CollectionStore abstracts one document collection
type CollectionStore[T any] interface {
	// FindAll returns every document in creation order.
	FindAll(ctx context.Context) ([]T, error)

	// FindByID returns the document with the given id.
	// Returns errors.NotFoundError if it doesn't exist.
	FindByID(ctx context.Context, id string) (*T, error)

	// Insert stores a new document, assigning its id and defaults.
	Insert(ctx context.Context, doc *T) error

	// UpdateByID sets the named fields of the document to the values in
	// patch, leaving all other fields untouched, and returns the result.
	// Field names are JSON names. Returns errors.NotFoundError if no
	// document has the id.
	UpdateByID(ctx context.Context, id string, patch *T, fields []string) (*T, error)

	// DeleteByID removes the document. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id string) error

	// CountAll returns the number of documents in the collection.
	CountAll(ctx context.Context) (int64, error)
}
