package gorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
)

func TestNewStores(t *testing.T) {
	m := NewMockDB(t)

	stores, err := NewStores(m.GormDB)
	require.NoError(t, err)

	assert.Equal(t, "characters", stores.Characters.(*Collection[model.Character]).Name())
	assert.Equal(t, "species", stores.Species.(*Collection[model.Species]).Name())
	assert.Equal(t, "planets", stores.Planets.(*Collection[model.Planet]).Name())
	assert.Equal(t, "films", stores.Films.(*Collection[model.Film]).Name())
	assert.Equal(t, "starships", stores.Starships.(*Collection[model.Starship]).Name())
	assert.Equal(t, "vehicles", stores.Vehicles.(*Collection[model.Vehicle]).Name())
	assert.Equal(t, "users", stores.Users.(*UsersStore).Name())
	assert.NotNil(t, stores.Health)
}
