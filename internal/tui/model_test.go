// ABOUTME: Tests for the TUI model driven through Update.
// ABOUTME: Covers create, edit, search, removal and external changes.

package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/persist"
	"github.com/harper/jot/internal/storage"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func newTestModel(t *testing.T, seed ...models.Note) (*Model, *persist.Adapter) {
	t.Helper()
	adapter := persist.New(storage.NewMemoryHub().Handle(), nil)
	if len(seed) > 0 {
		if err := adapter.Save(seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	n := 0
	m := New(adapter, Options{
		Filters: app.DefaultFilters(),
		Now:     func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, adapter
}

func press(m tea.Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+d":
			msg = tea.KeyMsg{Type: tea.KeyCtrlD}
		case "ctrl+x":
			msg = tea.KeyMsg{Type: tea.KeyCtrlX}
		case "ctrl+o":
			msg = tea.KeyMsg{Type: tea.KeyCtrlO}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestEmptyListShowsPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)

	if !strings.Contains(m.View(), "No notes to show. Create a note!") {
		t.Errorf("expected placeholder in view:\n%s", m.View())
	}
}

func TestCreateOpensEditor(t *testing.T) {
	m, adapter := newTestModel(t)

	press(m, "n")

	if loc := m.Location(); loc != app.EditLocation("id-1") {
		t.Fatalf("expected edit view for id-1, got %v", loc)
	}
	stored := adapter.Load()
	if len(stored) != 1 || stored[0].ID != "id-1" {
		t.Errorf("unexpected stored notes %#v", stored)
	}
}

func TestTypingTitlePersists(t *testing.T) {
	m, adapter := newTestModel(t)
	press(m, "n", "H", "i")

	stored := adapter.Load()
	if stored[0].Title != "Hi" {
		t.Errorf("title = %q, want %q", stored[0].Title, "Hi")
	}

	press(m, "tab", "b", "o", "d", "y")
	if got := adapter.Load()[0].Body; got != "body" {
		t.Errorf("body = %q, want %q", got, "body")
	}
}

func TestEscReturnsToList(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "n", "x", "esc")

	if m.Location() != app.ListLocation {
		t.Fatalf("expected list view, got %v", m.Location())
	}
	rows := m.list.ctrl.View().Rows
	if len(rows) != 1 || rows[0].Title != "x" {
		t.Errorf("expected new note in list, got %#v", rows)
	}
}

func TestRemoveReturnsToList(t *testing.T) {
	m, adapter := newTestModel(t, models.Note{ID: "a", Title: "doomed", CreatedAt: 1, UpdatedAt: 1})
	press(m, "enter")
	if m.Location() != app.EditLocation("a") {
		t.Fatalf("expected edit view, got %v", m.Location())
	}

	press(m, "ctrl+x")
	if !strings.Contains(m.View(), "Remove this note?") {
		t.Fatalf("expected confirmation prompt:\n%s", m.View())
	}
	press(m, "y")

	if m.Location() != app.ListLocation {
		t.Errorf("expected list view after remove, got %v", m.Location())
	}
	if n := len(adapter.Load()); n != 0 {
		t.Errorf("expected empty store, got %d notes", n)
	}
}

func TestRemoveDeclinedKeepsNote(t *testing.T) {
	m, adapter := newTestModel(t, models.Note{ID: "a", Title: "keep", CreatedAt: 1, UpdatedAt: 1})
	press(m, "enter", "ctrl+x", "n")

	if m.Location() != app.EditLocation("a") {
		t.Errorf("expected to stay in the editor, got %v", m.Location())
	}
	if n := len(adapter.Load()); n != 1 {
		t.Errorf("expected note kept, got %d notes", n)
	}
	if got := adapter.Load()[0].Title; got != "keep" {
		t.Errorf("answer leaked into the title: %q", got)
	}
}

func TestCtrlDDeletesForwardInBody(t *testing.T) {
	m, adapter := newTestModel(t, models.Note{ID: "a", Title: "t", Body: "ab", CreatedAt: 1, UpdatedAt: 1})
	press(m, "enter", "tab", "ctrl+d")

	if m.Location() != app.EditLocation("a") {
		t.Fatalf("expected to stay in the editor, got %v", m.Location())
	}
	if n := len(adapter.Load()); n != 1 {
		t.Errorf("expected note kept, got %d notes", n)
	}
}

func TestSearchFiltersRows(t *testing.T) {
	m, _ := newTestModel(t,
		models.Note{ID: "a", Title: "Shopping", CreatedAt: 1, UpdatedAt: 5},
		models.Note{ID: "b", Title: "Work", CreatedAt: 2, UpdatedAt: 6},
	)

	press(m, "/", "s", "h", "o", "p", "enter")

	rows := m.list.ctrl.View().Rows
	if len(rows) != 1 || rows[0].ID != "a" {
		t.Errorf("unexpected rows %#v", rows)
	}
	if m.list.searching {
		t.Error("search should be blurred after enter")
	}
}

func TestSortKeyCycles(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "s")
	if got := m.list.ctrl.Filters().SortBy; got != notes.DefaultSort.Next() {
		t.Errorf("sort = %q, want %q", got, notes.DefaultSort.Next())
	}
}

func TestFiltersSurviveEditRoundTrip(t *testing.T) {
	m, _ := newTestModel(t, models.Note{ID: "a", Title: "Shopping", CreatedAt: 1, UpdatedAt: 5})
	press(m, "s", "/", "s", "enter", "enter")
	if m.Location() != app.EditLocation("a") {
		t.Fatalf("expected edit view, got %v", m.Location())
	}

	press(m, "esc")

	f := m.list.ctrl.Filters()
	if f.SearchText != "s" || f.SortBy != notes.DefaultSort.Next() {
		t.Errorf("filters not kept: %#v", f)
	}
}

func TestExternalChangeUpdatesList(t *testing.T) {
	m, _ := newTestModel(t)
	payload, err := persist.Encode([]models.Note{{ID: "z", Title: "from elsewhere", CreatedAt: 1, UpdatedAt: 1}})
	if err != nil {
		t.Fatal(err)
	}

	m.Update(changeMsg{change: storage.Change{Key: persist.Key, NewValue: payload}})

	if !strings.Contains(m.View(), "from elsewhere") {
		t.Errorf("expected external note in view:\n%s", m.View())
	}
}

func TestExternalRemovalLeavesEditor(t *testing.T) {
	m, _ := newTestModel(t, models.Note{ID: "a", Title: "t", CreatedAt: 1, UpdatedAt: 1})
	press(m, "enter")

	m.Update(changeMsg{change: storage.Change{Key: persist.Key, NewValue: []byte("[]")}})

	if m.Location() != app.ListLocation {
		t.Errorf("expected list view, got %v", m.Location())
	}
}

func TestStartAtMissingNote(t *testing.T) {
	adapter := persist.New(storage.NewMemoryHub().Handle(), nil)

	m := New(adapter, Options{Start: app.EditLocation("nope")})

	if m.Location() != app.ListLocation {
		t.Errorf("expected list view, got %v", m.Location())
	}
	if m.Status() == "" {
		t.Error("expected a status message")
	}
}
