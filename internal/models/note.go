// ABOUTME: Note model representing a short text note with millisecond timestamps.
// ABOUTME: Provides constructor and methods for note lifecycle.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is the persisted record. JSON field names are the storage wire format.
type Note struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Body      string `json:"body" yaml:"body"`
	CreatedAt int64  `json:"createdAt" yaml:"created_at"`
	UpdatedAt int64  `json:"updatedAt" yaml:"updated_at"`
}

// NewNote returns a blank note with a fresh id, created and updated now.
func NewNote() *Note {
	return NewNoteAt(uuid.NewString(), time.Now())
}

// NewNoteAt returns a blank note with the given id and creation time.
func NewNoteAt(id string, now time.Time) *Note {
	ts := now.UnixMilli()
	return &Note{
		ID:        id,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (n *Note) Touch() {
	n.TouchAt(time.Now())
}

// TouchAt sets UpdatedAt to now. UpdatedAt never moves backwards.
func (n *Note) TouchAt(now time.Time) {
	ts := now.UnixMilli()
	if ts < n.UpdatedAt {
		return
	}
	n.UpdatedAt = ts
}

// Created returns CreatedAt as a time.Time.
func (n *Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// Updated returns UpdatedAt as a time.Time.
func (n *Note) Updated() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// ShortID returns the first six characters of the id, used for CLI display.
func (n *Note) ShortID() string {
	if len(n.ID) <= 6 {
		return n.ID
	}
	return n.ID[:6]
}
