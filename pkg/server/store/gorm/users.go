package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	*Collection[model.User]
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) (*UsersStore, error) {
	c, err := NewCollection[model.User](db)
	if err != nil {
		return nil, err
	}
	return &UsersStore{Collection: c}, nil
}

// Insert stores a new user. A username held by another row is reported as
// errors.ConflictError, regardless of any earlier CountByUsername check.
func (s *UsersStore) Insert(ctx context.Context, user *model.User) error {
	return usernameConflict(s.Collection.Insert(ctx, user))
}

func (s *UsersStore) UpdateByID(ctx context.Context, id string, patch *model.User, fields []string) (*model.User, error) {
	user, err := s.Collection.UpdateByID(ctx, id, patch, fields)
	return user, usernameConflict(err)
}

func (s *UsersStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	tx := s.db.WithContext(ctx).Where("username = ?", username).Take(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError(s.name, username)
		}
		return nil, errors.WrapStore("find", s.name, tx.Error)
	}
	return &user, nil
}

func (s *UsersStore) CountByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, errors.WrapStore("count", s.name, err)
	}
	return count, nil
}

func usernameConflict(err error) error {
	var state interface{ SQLState() string }
	if errors.As(err, &state) && state.SQLState() == uniqueViolation {
		cause, _ := state.(error)
		return errors.NewConflictError("users", "username", "username already taken", cause)
	}
	return err
}
