package gorm

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestHealthStoreCheckConnectivity(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		mdb := NewMockDB(t)
		mdb.Mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, NewHealthStore(mdb.GormDB).CheckConnectivity(context.Background()))
	})

	t.Run("database down", func(t *testing.T) {
		mdb := NewMockDB(t)
		mdb.Mock.ExpectExec(`SELECT 1`).WillReturnError(sql.ErrConnDone)

		assert.Error(t, NewHealthStore(mdb.GormDB).CheckConnectivity(context.Background()))
	})
}
