// ABOUTME: Tests for Note model constructor and methods.
// ABOUTME: Validates UUID generation and timestamp handling.

package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewNote(t *testing.T) {
	note := NewNote()

	if _, err := uuid.Parse(note.ID); err != nil {
		t.Errorf("expected UUID id, got %q: %v", note.ID, err)
	}
	if note.Title != "" || note.Body != "" {
		t.Errorf("expected blank note, got title=%q body=%q", note.Title, note.Body)
	}
	if note.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}
	if note.CreatedAt != note.UpdatedAt {
		t.Errorf("expected CreatedAt == UpdatedAt, got %d and %d", note.CreatedAt, note.UpdatedAt)
	}
}

func TestNewNoteAt(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)
	note := NewNoteAt("abc", now)

	if note.ID != "abc" {
		t.Errorf("expected id abc, got %q", note.ID)
	}
	if note.CreatedAt != 1_700_000_000_123 {
		t.Errorf("expected CreatedAt 1700000000123, got %d", note.CreatedAt)
	}
	if !note.Created().Equal(now) {
		t.Errorf("expected Created() %v, got %v", now, note.Created())
	}
}

func TestNoteTouch(t *testing.T) {
	note := NewNote()
	originalUpdated := note.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	note.Touch()

	if note.UpdatedAt <= originalUpdated {
		t.Error("expected UpdatedAt to be updated")
	}
}

func TestNoteTouchAtNeverMovesBackwards(t *testing.T) {
	note := NewNoteAt("abc", time.UnixMilli(5000))

	note.TouchAt(time.UnixMilli(4000))

	if note.UpdatedAt != 5000 {
		t.Errorf("expected UpdatedAt to stay 5000, got %d", note.UpdatedAt)
	}
}

func TestShortID(t *testing.T) {
	note := &Note{ID: "0123456789"}
	if got := note.ShortID(); got != "012345" {
		t.Errorf("expected 012345, got %q", got)
	}
	short := &Note{ID: "abc"}
	if got := short.ShortID(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
