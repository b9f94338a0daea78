package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxContentImages caps the number of images attached to a single entry.
const MaxContentImages = 5

// Content represents a published story entry in the archive.
type Content struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Introduction string    `json:"introduction" db:"introduction"`
	Source       string    `json:"source" db:"source"`
	Story        string    `json:"story" db:"story"`
	Images       []string  `json:"images" db:"images"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Content model
func (Content) TableName() string {
	return "contents"
}

// NewContent creates a new Content instance with a generated ID
func NewContent(title, introduction, source, story string, images []string) *Content {
	now := time.Now()
	return &Content{
		ID:           uuid.New(),
		Title:        title,
		Introduction: introduction,
		Source:       source,
		Story:        story,
		Images:       images,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
