package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestConnectRequiresURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Connect(Config{})
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestGormConfig(t *testing.T) {
	cfg := GormConfig("info")
	assert.True(t, cfg.SkipDefaultTransaction)
	assert.Equal(t, logger.Default.LogMode(logger.Silent), cfg.Logger)

	cfg = GormConfig("DEBUG")
	assert.Equal(t, logger.Default.LogMode(logger.Info), cfg.Logger)
}

func TestURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/swapi")
	assert.Equal(t, "postgres://localhost/swapi", URL())
}
