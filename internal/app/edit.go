// ABOUTME: Edit view controller: title/body input, removal and external sync.
// ABOUTME: A note that cannot be resolved redirects to the list view.

package app

import (
	"errors"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/render"
)

var ErrNoteNotFound = errors.New("note not found")

// EditController drives the edit view for one note. It is not safe for
// concurrent use.
type EditController struct {
	deps       Deps
	id         string
	notes      []models.Note
	index      int
	lastEdited string
	redirected bool

	// OnRefresh, when set, is called after an external change updates the note.
	OnRefresh func(models.Note, string)
}

// NewEditController loads the collection and resolves id. If the note is
// missing it navigates to the list view and returns ErrNoteNotFound.
func NewEditController(deps Deps, id string) (*EditController, error) {
	c := &EditController{
		deps: deps.withDefaults(),
		id:   id,
	}
	c.notes = c.deps.Store.Load()
	if !c.resolve() {
		return c, ErrNoteNotFound
	}
	return c, nil
}

// resolve finds the note by id or redirects to the list.
func (c *EditController) resolve() bool {
	i, ok := notes.Find(c.notes, c.id)
	if !ok {
		c.index = -1
		c.redirect()
		return false
	}
	c.index = i
	c.updateLabel()
	return true
}

// OnTitleInput sets the title, touches updatedAt and persists.
func (c *EditController) OnTitleInput(text string) {
	c.mutate(func(n *models.Note) { n.Title = text })
}

// OnBodyInput sets the body, touches updatedAt and persists.
func (c *EditController) OnBodyInput(text string) {
	c.mutate(func(n *models.Note) { n.Body = text })
}

func (c *EditController) mutate(fn func(*models.Note)) {
	if c.index < 0 {
		return
	}
	n := &c.notes[c.index]
	fn(n)
	n.TouchAt(c.deps.Now())
	c.updateLabel()
	c.save()
}

// OnRemove deletes the note, persists and navigates to the list view.
func (c *EditController) OnRemove() {
	c.notes, _ = notes.Remove(c.notes, c.id)
	c.index = -1
	c.save()
	c.redirect()
}

// OnExternalSync replaces the collection and re-resolves the note. If it was
// deleted elsewhere the view redirects to the list.
func (c *EditController) OnExternalSync(payload []byte) {
	if c.redirected {
		return
	}
	c.notes = c.deps.Store.Decode(payload)
	if !c.resolve() {
		c.deps.Logger.Debug("edited note removed elsewhere", "id", c.id)
		return
	}
	if c.OnRefresh != nil {
		c.OnRefresh(c.notes[c.index], c.lastEdited)
	}
}

// Refresh recomputes the last-edited label against the clock.
func (c *EditController) Refresh() {
	if c.index >= 0 {
		c.updateLabel()
	}
}

// Note returns the resolved note. ok is false after a redirect.
func (c *EditController) Note() (models.Note, bool) {
	if c.index < 0 {
		return models.Note{}, false
	}
	return c.notes[c.index], true
}

// ID returns the id this view edits.
func (c *EditController) ID() string {
	return c.id
}

// LastEdited returns the current "Last edited ..." label.
func (c *EditController) LastEdited() string {
	return c.lastEdited
}

// Redirected reports whether the view has navigated back to the list.
func (c *EditController) Redirected() bool {
	return c.redirected
}

// Notes returns the in-memory collection.
func (c *EditController) Notes() []models.Note {
	return c.notes
}

func (c *EditController) updateLabel() {
	c.lastEdited = render.LastEdited(c.notes[c.index].UpdatedAt, c.deps.Now())
}

func (c *EditController) redirect() {
	if c.redirected {
		return
	}
	c.redirected = true
	c.deps.Navigator.Navigate(ListLocation)
}

func (c *EditController) save() {
	if err := c.deps.Store.Save(c.notes); err != nil {
		c.deps.Logger.Error("save notes", "err", err)
	}
}
