package gorm

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

// Ensure Collection implements store.CollectionStore
var (
	_ store.CollectionStore[model.Character] = (*Collection[model.Character])(nil)
	_ store.CollectionStore[model.Film]      = (*Collection[model.Film])(nil)
)

// Collection implements store.CollectionStore using GORM
type Collection[T any] struct {
	db      *gorm.DB
	name    string
	columns map[string]string
}

// NewCollection creates a new Collection for the model type T
func NewCollection[T any](db *gorm.DB) (*Collection[T], error) {
	s, err := schema.Parse(new(T), &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]string, len(s.Fields)*3)
	for _, field := range s.Fields {
		if field.DBName == "" {
			continue
		}
		columns[field.DBName] = field.DBName
		columns[field.Name] = field.DBName
		if name := strings.Split(field.Tag.Get("json"), ",")[0]; name != "" && name != "-" {
			columns[name] = field.DBName
		}
	}

	return &Collection[T]{db: db, name: s.Table, columns: columns}, nil
}

// Name returns the table backing the collection
func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	var docs []T
	tx := c.db.WithContext(ctx).Order("created_at, id").Find(&docs)
	if tx.Error != nil {
		return nil, errors.WrapStore("find", c.name, tx.Error)
	}
	return docs, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	tx := c.db.WithContext(ctx).Where("id = ?", id).Take(&doc)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError(c.name, id)
		}
		return nil, errors.WrapStore("find", c.name, tx.Error)
	}
	return &doc, nil
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	return errors.WrapStore("insert", c.name, c.db.WithContext(ctx).Create(doc).Error)
}

func (c *Collection[T]) UpdateByID(ctx context.Context, id string, patch *T, fields []string) (*T, error) {
	cols, err := c.resolve(fields)
	if err != nil {
		return nil, err
	}

	tx := c.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select(cols).
		Updates(patch)
	if tx.Error != nil {
		return nil, errors.WrapStore("update", c.name, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, errors.NewNotFoundError(c.name, id)
	}

	return c.FindByID(ctx, id)
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	return errors.WrapStore("delete", c.name, c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error)
}

func (c *Collection[T]) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, errors.WrapStore("count", c.name, err)
	}
	return count, nil
}

// resolve maps field names to columns. updated_at is always included; the id
// and the store-managed timestamps can never be set by a caller.
func (c *Collection[T]) resolve(fields []string) ([]string, error) {
	cols := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		col, ok := c.columns[f]
		if !ok || col == "id" || col == "created_at" || col == "updated_at" {
			return nil, errors.NewValidationError(f, "Unknown field: "+f)
		}
		cols = append(cols, col)
	}
	return append(cols, "updated_at"), nil
}
