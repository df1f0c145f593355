// ABOUTME: Tests for the rendering pipeline.
// ABOUTME: Placeholder, fallback titles, relative labels and sort-then-filter order.

package render

import (
	"testing"
	"time"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ms(t time.Time) int64 { return t.UnixMilli() }

func TestRenderPlaceholderWhenNothingMatches(t *testing.T) {
	list := []models.Note{{ID: "1", Title: "Shopping", UpdatedAt: 5}}

	v := Render(list, "xyz", notes.ByEdited, now)

	if !v.Empty {
		t.Fatal("expected empty view")
	}
	if v.Placeholder != "No notes to show. Create a note!" {
		t.Errorf("unexpected placeholder %q", v.Placeholder)
	}
	if len(v.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(v.Rows))
	}
}

func TestRenderEmptyCollection(t *testing.T) {
	v := Render(nil, "", notes.ByEdited, now)
	if !v.Empty || v.Placeholder != EmptyMessage {
		t.Errorf("expected placeholder for empty collection, got %+v", v)
	}
}

func TestRenderSearchMatch(t *testing.T) {
	list := []models.Note{{ID: "1", Title: "Shopping", UpdatedAt: ms(now.Add(-3 * time.Hour))}}

	v := Render(list, "shop", notes.ByEdited, now)

	if v.Empty || len(v.Rows) != 1 {
		t.Fatalf("expected one row, got %+v", v)
	}
	row := v.Rows[0]
	if row.Title != "Shopping" {
		t.Errorf("expected title Shopping, got %q", row.Title)
	}
	if row.Status != "Last edited 3 hours ago" {
		t.Errorf("unexpected status %q", row.Status)
	}
	if row.Link != "/edit.html#1" {
		t.Errorf("unexpected link %q", row.Link)
	}
}

func TestRenderUnnamedNote(t *testing.T) {
	v := Render([]models.Note{{ID: "1", UpdatedAt: ms(now)}}, "", notes.ByEdited, now)

	if v.Rows[0].Title != "Unnamed Note" {
		t.Errorf("expected fallback title, got %q", v.Rows[0].Title)
	}
}

func TestRenderSortsThenFilters(t *testing.T) {
	list := []models.Note{
		{ID: "1", Title: "beta list", UpdatedAt: 1},
		{ID: "2", Title: "alpha list", UpdatedAt: 2},
		{ID: "3", Title: "other", UpdatedAt: 3},
	}

	byTitle := Render(list, "list", notes.Alphabetical, now)
	byEdited := Render(list, "list", notes.ByEdited, now)

	if byTitle.Rows[0].ID != "2" || byTitle.Rows[1].ID != "1" {
		t.Errorf("alphabetical: unexpected order %+v", byTitle.Rows)
	}
	if byEdited.Rows[0].ID != "2" || byEdited.Rows[1].ID != "1" || len(byEdited.Rows) != 2 {
		t.Errorf("by edited: unexpected rows %+v", byEdited.Rows)
	}
}

func TestRenderSearchIsEmptyTitleAware(t *testing.T) {
	// The fallback title is display-only; it is not searchable.
	v := Render([]models.Note{{ID: "1"}}, "unnamed", notes.ByEdited, now)
	if !v.Empty {
		t.Error("expected untitled note not to match its display fallback")
	}
}

func TestLastEdited(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Last edited now"},
		{3 * time.Hour, "Last edited 3 hours ago"},
		{48 * time.Hour, "Last edited 2 days ago"},
	}
	for _, tt := range tests {
		if got := LastEdited(ms(now.Add(-tt.ago)), now); got != tt.want {
			t.Errorf("%v ago: expected %q, got %q", tt.ago, tt.want, got)
		}
	}
}
