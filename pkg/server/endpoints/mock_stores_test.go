package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

var (
	_ store.CollectionStore[model.Film] = (*MockCollection[model.Film])(nil)
	_ store.UsersStore                  = (*MockUsersStore)(nil)
	_ store.HealthStore                 = (*MockHealthStore)(nil)
)

// MockCollection implements store.CollectionStore for testing using testify/mock
type MockCollection[T any] struct {
	mock.Mock
}

func (m *MockCollection[T]) FindAll(ctx context.Context) ([]T, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockCollection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCollection[T]) Insert(ctx context.Context, doc *T) error {
	args := m.Called(doc)
	return args.Error(0)
}

func (m *MockCollection[T]) UpdateByID(ctx context.Context, id string, patch *T, fields []string) (*T, error) {
	args := m.Called(id, patch, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCollection[T]) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCollection[T]) CountAll(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	MockCollection[model.User]
}

func (m *MockUsersStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) CountByUsername(ctx context.Context, username string) (int64, error) {
	args := m.Called(username)
	return args.Get(0).(int64), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}
