// ABOUTME: Rendering pipeline: collection + filters to a list of display rows.
// ABOUTME: Sort, then filter; an empty result renders the placeholder instead of rows.

package render

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
)

const (
	// UnnamedTitle is shown for notes with an empty title.
	UnnamedTitle = "Unnamed Note"
	// EmptyMessage replaces the rows when no note survives the filter.
	EmptyMessage = "No notes to show. Create a note!"

	// EditPath is the edit view's address; the note id follows as a fragment.
	EditPath = "/edit.html"
	// ListPath is the list view's address.
	ListPath = "/index.html"
)

// Row is one rendered note.
type Row struct {
	ID     string
	Title  string
	Status string
	Link   string
}

// View is a complete rendering of the list. It replaces any prior View.
type View struct {
	Rows        []Row
	Empty       bool
	Placeholder string
	SearchText  string
	SortBy      notes.SortBy
}

// Render sorts then filters the collection and builds rows relative to now.
func Render(list []models.Note, search string, sortBy notes.SortBy, now time.Time) View {
	visible := notes.Filter(notes.Sort(list, sortBy), search)

	v := View{SearchText: search, SortBy: sortBy}
	if len(visible) == 0 {
		v.Empty = true
		v.Placeholder = EmptyMessage
		return v
	}

	v.Rows = make([]Row, len(visible))
	for i := range visible {
		v.Rows[i] = NoteRow(visible[i], now)
	}
	return v
}

// NoteRow renders a single note.
func NoteRow(n models.Note, now time.Time) Row {
	return Row{
		ID:     n.ID,
		Title:  DisplayTitle(n.Title),
		Status: LastEdited(n.UpdatedAt, now),
		Link:   EditLink(n.ID),
	}
}

// DisplayTitle substitutes UnnamedTitle for an empty title.
func DisplayTitle(title string) string {
	if len(title) > 0 {
		return title
	}
	return UnnamedTitle
}

// LastEdited formats "Last edited 3 hours ago" for a millisecond timestamp.
func LastEdited(updatedAt int64, now time.Time) string {
	return "Last edited " + Relative(time.UnixMilli(updatedAt), now)
}

// Relative formats t relative to now, e.g. "3 hours ago".
func Relative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// EditLink is the address of the edit view for id.
func EditLink(id string) string {
	return EditPath + "#" + id
}
