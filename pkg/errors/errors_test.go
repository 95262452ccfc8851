package errors

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("films", "abc")

	assert.Equal(t, "films with ID abc not found", err.Error())
	assert.True(t, Is(err, ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", err)))
	assert.False(t, IsValidationError(err))
}

func TestMissingFieldError(t *testing.T) {
	err := NewMissingFieldError("title")

	assert.Equal(t, "Missing `title` in request body", err.Error())
	assert.Equal(t, "title", err.Field)
	assert.True(t, IsValidationError(err))
}

func TestConflictError(t *testing.T) {
	cause := New("duplicate key")
	err := NewConflictError("users", "username", "username already taken", cause)

	assert.Equal(t, "username already taken", err.Error())
	assert.True(t, IsAlreadyExists(err))
	assert.True(t, Is(err, cause))

	bare := NewConflictError("users", "username", "", nil)
	assert.Equal(t, "users username already exists", bare.Error())
}

func TestStoreError(t *testing.T) {
	assert.Nil(t, WrapStore("find", "films", nil))

	err := WrapStore("find", "films", sql.ErrConnDone)
	assert.True(t, IsUnavailable(err))
	assert.True(t, Is(err, sql.ErrConnDone))
	assert.Contains(t, err.Error(), "find films")

	var storeErr *StoreError
	assert.True(t, As(err, &storeErr))
	assert.Equal(t, "films", storeErr.Collection)
}
