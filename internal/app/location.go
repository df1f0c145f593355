// ABOUTME: Navigation addresses for the list and edit views.
// ABOUTME: The edit view is addressed by note id in the fragment of a fixed path.

package app

import (
	"fmt"
	"strings"

	"github.com/harper/jot/internal/render"
)

// Location is a navigable destination. An empty NoteID is the list view.
type Location struct {
	NoteID string
}

// ListLocation is the list view.
var ListLocation = Location{}

// EditLocation addresses the edit view for id.
func EditLocation(id string) Location {
	return Location{NoteID: id}
}

// IsEdit reports whether l addresses the edit view.
func (l Location) IsEdit() bool {
	return l.NoteID != ""
}

func (l Location) String() string {
	if l.IsEdit() {
		return render.EditLink(l.NoteID)
	}
	return render.ListPath
}

// ParseLocation accepts "/index.html", "/" or "", and "/edit.html#<id>".
func ParseLocation(s string) (Location, error) {
	switch s {
	case "", "/", render.ListPath:
		return ListLocation, nil
	}
	if rest, ok := strings.CutPrefix(s, render.EditPath); ok {
		id := strings.TrimPrefix(rest, "#")
		return EditLocation(id), nil
	}
	return Location{}, fmt.Errorf("unknown location %q", s)
}

// Navigator moves the host to another view.
type Navigator interface {
	Navigate(Location)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Location)

func (f NavigatorFunc) Navigate(l Location) { f(l) }

// History is a Navigator that records every navigation.
type History struct {
	Visits []Location
}

func (h *History) Navigate(l Location) {
	h.Visits = append(h.Visits, l)
}

// Last returns the most recent navigation.
func (h *History) Last() (Location, bool) {
	if len(h.Visits) == 0 {
		return Location{}, false
	}
	return h.Visits[len(h.Visits)-1], true
}
