package gorm

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
)

func newUsers(t *testing.T) (*UsersStore, *MockDB) {
	t.Helper()
	mdb := NewMockDB(t)
	users, err := NewUsersStore(mdb.GormDB)
	require.NoError(t, err)
	return users, mdb
}

func TestUsersStoreFindByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		users, mdb := newUsers(t)
		mdb.Mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1 LIMIT 1`).
			WithArgs("han").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow("u1", "han", "$2a$10$hash"))

		user, err := users.FindByUsername(context.Background(), "han")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		users, mdb := newUsers(t)
		mdb.Mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := users.FindByUsername(context.Background(), "nobody")
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestUsersStoreCountByUsername(t *testing.T) {
	users, mdb := newUsers(t)
	mdb.Mock.ExpectQuery(`SELECT count\(1\) FROM "users" WHERE username = \$1`).
		WithArgs("han").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := users.CountByUsername(context.Background(), "han")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUsersStoreInsertUniqueViolation(t *testing.T) {
	users, mdb := newUsers(t)
	mdb.Mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(&sqlStateError{code: "23505"})

	err := users.Insert(context.Background(), &model.User{Username: "han", PasswordHash: "x"})
	assert.True(t, errors.IsAlreadyExists(err))
	assert.False(t, errors.IsUnavailable(err))
	assert.Equal(t, "username already taken", err.Error())
}

func TestUsersStoreInsertOtherFailure(t *testing.T) {
	users, mdb := newUsers(t)
	mdb.Mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(&sqlStateError{code: "57P01"})

	err := users.Insert(context.Background(), &model.User{Username: "han"})
	assert.True(t, errors.IsUnavailable(err))
	assert.False(t, errors.IsAlreadyExists(err))
}

func TestUsersStoreUpdatePassword(t *testing.T) {
	users, mdb := newUsers(t)
	mdb.Mock.ExpectExec(`UPDATE "users" SET .*"password_hash"=`).WillReturnResult(sqlmock.NewResult(0, 1))
	mdb.Mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow("u1", "han", "new"))

	user, err := users.UpdateByID(context.Background(), "u1", &model.User{PasswordHash: "new"}, []string{"PasswordHash"})
	require.NoError(t, err)
	assert.Equal(t, "new", user.PasswordHash)
}
