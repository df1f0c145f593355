// ABOUTME: List view controller: create, search, sort and external sync handlers.
// ABOUTME: Owns its copy of the collection and the transient filter state.

package app

import (
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/render"
)

// Filters is the list view's transient search and sort state.
type Filters struct {
	SearchText string
	SortBy     notes.SortBy
}

// DefaultFilters matches everything, most recently edited first.
func DefaultFilters() Filters {
	return Filters{SortBy: notes.DefaultSort}
}

// ListController drives the list view. It is not safe for concurrent use.
type ListController struct {
	deps    Deps
	notes   []models.Note
	filters Filters
	view    render.View

	// OnRender, when set, receives every new rendering.
	OnRender func(render.View)
}

// NewListController loads the collection and renders it once.
func NewListController(deps Deps, filters Filters) *ListController {
	if !filters.SortBy.Valid() {
		filters.SortBy = notes.DefaultSort
	}
	c := &ListController{
		deps:    deps.withDefaults(),
		filters: filters,
	}
	c.notes = c.deps.Store.Load()
	c.render()
	return c
}

// OnCreate appends a blank note, persists and navigates to its edit view.
func (c *ListController) OnCreate() models.Note {
	note := *models.NewNoteAt(c.deps.NewID(), c.deps.Now())
	c.notes = append(c.notes, note)
	c.save()
	c.deps.Navigator.Navigate(EditLocation(note.ID))
	return note
}

// OnSearchInput updates the search text and re-renders.
func (c *ListController) OnSearchInput(text string) {
	c.filters.SearchText = text
	c.render()
}

// OnSortChange parses value and re-renders. An unknown criterion leaves the
// current one in place and returns notes.ErrUnknownSortBy.
func (c *ListController) OnSortChange(value string) error {
	by, err := notes.ParseSortBy(value)
	if err != nil {
		c.deps.Logger.Debug("ignoring sort change", "value", value, "err", err)
		return err
	}
	c.filters.SortBy = by
	c.render()
	return nil
}

// OnExternalSync replaces the collection with a payload written by another
// view and re-renders.
func (c *ListController) OnExternalSync(payload []byte) {
	c.notes = c.deps.Store.Decode(payload)
	c.deps.Logger.Debug("list reloaded from external change", "notes", len(c.notes))
	c.render()
}

// Refresh re-renders without changing state, e.g. to age the relative labels.
func (c *ListController) Refresh() {
	c.render()
}

// View returns the latest rendering.
func (c *ListController) View() render.View {
	return c.view
}

// Notes returns the in-memory collection.
func (c *ListController) Notes() []models.Note {
	return c.notes
}

// Filters returns the current filter state.
func (c *ListController) Filters() Filters {
	return c.filters
}

func (c *ListController) render() {
	c.view = render.Render(c.notes, c.filters.SearchText, c.filters.SortBy, c.deps.Now())
	if c.OnRender != nil {
		c.OnRender(c.view)
	}
}

func (c *ListController) save() {
	if err := c.deps.Store.Save(c.notes); err != nil {
		c.deps.Logger.Error("save notes", "err", err)
	}
}
