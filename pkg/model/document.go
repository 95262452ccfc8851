package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DisplayTimeFormat is used for the created/edited defaults
const DisplayTimeFormat = time.RFC3339

// Document holds the fields shared by every SWAPI collection.
// Created and Edited are opaque strings supplied by clients; CreatedAt and
// UpdatedAt are maintained by the store and never serialized.
type Document struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Created   string    `json:"created"`
	Edited    string    `json:"edited"`
	URL       string    `gorm:"column:url" json:"url"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate assigns the id and defaults the display timestamps
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(DisplayTimeFormat)
	if d.Created == "" {
		d.Created = now
	}
	if d.Edited == "" {
		d.Edited = now
	}
	return nil
}

// GetID returns the document id
func (d *Document) GetID() string {
	return d.ID
}

// refs returns a non-nil copy of a relationship list so empty lists encode as []
func refs(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
