// ABOUTME: Tests for the persistence adapter.
// ABOUTME: Round trips, missing and corrupt data, duplicate ids.

package persist

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/storage"
)

func newAdapter(t *testing.T) (*Adapter, storage.Store) {
	t.Helper()
	store := storage.NewMemoryHub().Handle()
	return New(store, nil), store
}

func TestLoadMissingKey(t *testing.T) {
	a, _ := newAdapter(t)

	got := a.Load()

	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil collection, got %#v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	a, _ := newAdapter(t)
	want := []models.Note{
		{ID: "1", Title: "Shopping", Body: "milk\neggs", CreatedAt: 1, UpdatedAt: 5},
		{ID: "2", Title: "", Body: "", CreatedAt: 3, UpdatedAt: 3},
		{ID: "3", Title: "ünïcode ✓", Body: `"quoted"`, CreatedAt: 1_700_000_000_000, UpdatedAt: 1_700_000_000_001},
	}

	if err := a.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got := a.Load()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\nwant %#v\ngot  %#v", want, got)
	}
}

func TestSaveWireFormat(t *testing.T) {
	a, store := newAdapter(t)

	if err := a.Save([]models.Note{{ID: "x", Title: "t", Body: "b", CreatedAt: 1, UpdatedAt: 2}}); err != nil {
		t.Fatal(err)
	}

	data, _, _ := store.Get(Key)
	want := `[{"id":"x","title":"t","body":"b","createdAt":1,"updatedAt":2}]`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestSaveEmptyCollection(t *testing.T) {
	a, store := newAdapter(t)

	if err := a.Save(nil); err != nil {
		t.Fatal(err)
	}

	data, _, _ := store.Get(Key)
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}

func TestLoadCorruptDataIsDiscarded(t *testing.T) {
	for _, blob := range []string{"{not json", `{"id":"1"}`, `"text"`, `[1,2,3]`} {
		store := storage.NewMemoryHub().Handle()
		var buf bytes.Buffer
		a := New(store, log.New(&buf))
		_ = store.Set(Key, []byte(blob))

		got := a.Load()

		if len(got) != 0 {
			t.Errorf("%q: expected empty collection, got %v", blob, got)
		}
		if !strings.Contains(buf.String(), "corrupt") {
			t.Errorf("%q: expected a warning, got %q", blob, buf.String())
		}
	}
}

func TestLoadNullIsEmpty(t *testing.T) {
	a, store := newAdapter(t)
	_ = store.Set(Key, []byte("null"))

	if got := a.Load(); got == nil || len(got) != 0 {
		t.Errorf("expected empty collection, got %#v", got)
	}
}

func TestLoadDropsDuplicateIDs(t *testing.T) {
	a, store := newAdapter(t)
	_ = store.Set(Key, []byte(`[{"id":"1","title":"a"},{"id":"1","title":"b"}]`))

	got := a.Load()

	if len(got) != 1 || got[0].Title != "a" {
		t.Errorf("expected first occurrence only, got %v", got)
	}
}

func TestLoadDropsNotesWithoutID(t *testing.T) {
	a, store := newAdapter(t)
	_ = store.Set(Key, []byte(`[{"title":"no id"},{"id":"2","title":"ok"},{"id":"","title":"blank"}]`))

	got := a.Load()

	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("expected only the note with an id, got %v", got)
	}
}

type failingStore struct{ storage.Store }

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk on fire") }
func (failingStore) Set(string, []byte) error         { return errors.New("disk on fire") }

func TestStoreErrors(t *testing.T) {
	a := New(failingStore{}, nil)

	if got := a.Load(); len(got) != 0 {
		t.Errorf("expected empty collection on read failure, got %v", got)
	}
	if err := a.Save([]models.Note{{ID: "1"}}); err == nil {
		t.Error("expected save error to be returned")
	}
}
