// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Collection[T] is a generic document store instantiated once per model.
// Field names accepted by UpdateByID are resolved against the GORM schema of
// T, so JSON names, Go field names and column names all address the same
// column.
package gorm
