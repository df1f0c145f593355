// ABOUTME: Pure operations over an in-memory note collection.
// ABOUTME: Sorting by criterion, title search, removal and lookup by id.

package notes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/jot/internal/models"
)

// SortBy names an ordering of the collection.
type SortBy string

const (
	ByEdited     SortBy = "byEdited"
	ByCreated    SortBy = "byCreated"
	Alphabetical SortBy = "alphabetical"
)

// DefaultSort is the ordering used when none is chosen.
const DefaultSort = ByEdited

var (
	ErrUnknownSortBy = errors.New("unknown sort criterion")
	ErrNotFound      = errors.New("note not found")
	ErrAmbiguousID   = errors.New("id prefix matches more than one note")
)

// SortOptions lists the accepted criteria in display order.
var SortOptions = []SortBy{ByEdited, ByCreated, Alphabetical}

// ParseSortBy accepts the canonical names case-insensitively plus the short
// aliases "edited", "created" and "title".
func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "byedited", "edited":
		return ByEdited, nil
	case "bycreated", "created":
		return ByCreated, nil
	case "alphabetical", "title":
		return Alphabetical, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortBy, s)
}

// Valid reports whether s is one of the known criteria.
func (s SortBy) Valid() bool {
	switch s {
	case ByEdited, ByCreated, Alphabetical:
		return true
	}
	return false
}

// Label is the human name shown in the UI.
func (s SortBy) Label() string {
	switch s {
	case ByCreated:
		return "Sort by recently created"
	case Alphabetical:
		return "Sort alphabetically"
	default:
		return "Sort by last edited"
	}
}

// Next returns the criterion after s in SortOptions, wrapping around.
func (s SortBy) Next() SortBy {
	for i, opt := range SortOptions {
		if opt == s {
			return SortOptions[(i+1)%len(SortOptions)]
		}
	}
	return DefaultSort
}

// Sort returns a new slice ordered by the criterion. Equal keys keep their
// input order. Unknown criteria fall back to DefaultSort.
func Sort(notes []models.Note, by SortBy) []models.Note {
	sorted := make([]models.Note, len(notes))
	copy(sorted, notes)

	if !by.Valid() {
		by = DefaultSort
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		switch by {
		case ByCreated:
			return sorted[i].CreatedAt > sorted[j].CreatedAt
		case Alphabetical:
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		default:
			return sorted[i].UpdatedAt > sorted[j].UpdatedAt
		}
	})

	return sorted
}

// Filter returns the notes whose title contains search, ignoring case.
// The body is not searched. An empty search matches every note.
func Filter(notes []models.Note, search string) []models.Note {
	needle := strings.ToLower(search)
	result := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), needle) {
			result = append(result, n)
		}
	}
	return result
}

// Find returns the index of the first note with id.
func Find(notes []models.Note, id string) (int, bool) {
	for i := range notes {
		if notes[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Resolve finds a note by exact id, or by a prefix matching exactly one id.
func Resolve(notes []models.Note, ref string) (models.Note, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Note{}, ErrNotFound
	}
	if i, ok := Find(notes, ref); ok {
		return notes[i], nil
	}
	match := -1
	for i := range notes {
		if !strings.HasPrefix(notes[i].ID, ref) {
			continue
		}
		if match >= 0 {
			return models.Note{}, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
		}
		match = i
	}
	if match < 0 {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return notes[match], nil
}

// Remove deletes the first note with id. Absent ids are a no-op.
// The input slice's backing array is reused.
func Remove(notes []models.Note, id string) ([]models.Note, bool) {
	i, ok := Find(notes, id)
	if !ok {
		return notes, false
	}
	return append(notes[:i], notes[i+1:]...), true
}

// Dedupe keeps the first note for every id and reports how many were dropped.
// Notes with an empty id cannot be addressed and are dropped as well.
func Dedupe(notes []models.Note) ([]models.Note, int) {
	seen := make(map[string]struct{}, len(notes))
	result := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID == "" {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		result = append(result, n)
	}
	return result, len(notes) - len(result)
}

// Merge folds incoming into existing by id. A note already present is
// replaced only when the incoming copy has a newer UpdatedAt. New ids are
// appended in incoming order.
func Merge(existing, incoming []models.Note) (merged []models.Note, added, updated int) {
	merged = make([]models.Note, len(existing), len(existing)+len(incoming))
	copy(merged, existing)
	for _, n := range incoming {
		i, ok := Find(merged, n.ID)
		switch {
		case !ok:
			merged = append(merged, n)
			added++
		case n.UpdatedAt > merged[i].UpdatedAt:
			merged[i] = n
			updated++
		}
	}
	return merged, added, updated
}
