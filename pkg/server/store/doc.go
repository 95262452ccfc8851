// Package store provides storage abstractions for the SWAPI server.
//
// This package defines interfaces for document operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// The gorm subpackage implements them on PostgreSQL; tests use testify mocks.
//
// # Available Stores
//
//   - CollectionStore[T]: find-all, find-by-id, insert, update-by-id,
//     delete-by-id and count for one document collection
//   - UsersStore: CollectionStore[model.User] plus username lookups
//   - HealthStore: database connectivity check
//
// # Errors
//
// Stores return errors from pkg/errors:
//
//	film, err := films.FindByID(ctx, id)
//	if errors.IsNotFound(err) {
//	    // 404
//	}
//
// Failures of the database itself are wrapped as errors.StoreError and match
// errors.ErrUnavailable.
package store
