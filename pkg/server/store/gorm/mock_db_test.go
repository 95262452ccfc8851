package gorm

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/db"
)

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		}),
		db.GormConfig(""),
	)
	require.NoError(t, err)

	m := &MockDB{DB: sqlDB, Mock: mock, GormDB: gormDB}
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return m
}

// sqlStateError mimics the driver errors that report a SQLSTATE code
type sqlStateError struct {
	code string
}

func (e *sqlStateError) Error() string {
	return "ERROR: duplicate key value violates unique constraint (SQLSTATE " + e.code + ")"
}

func (e *sqlStateError) SQLState() string {
	return e.code
}
