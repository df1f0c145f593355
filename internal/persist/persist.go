// ABOUTME: Persistence adapter: the whole note collection as one JSON blob under one key.
// ABOUTME: Loading is fail-open; missing or corrupt data reads as an empty collection.

package persist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/storage"
)

// Key is the store key holding the collection.
const Key = "notes"

// Adapter reads and writes the collection through a storage.Store.
type Adapter struct {
	store  storage.Store
	key    string
	logger *log.Logger
}

// New returns an adapter over store using Key. A nil logger discards.
func New(store storage.Store, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{store: store, key: Key, logger: logger}
}

// Key returns the store key this adapter uses.
func (a *Adapter) Key() string {
	return a.key
}

// Store returns the underlying store.
func (a *Adapter) Store() storage.Store {
	return a.store
}

// Load returns the persisted collection. It never fails: an absent key,
// unreadable store or undecodable blob all yield an empty collection.
func (a *Adapter) Load() []models.Note {
	data, ok, err := a.store.Get(a.key)
	if err != nil {
		a.logger.Warn("read notes failed, starting empty", "err", err)
		return []models.Note{}
	}
	if !ok {
		return []models.Note{}
	}
	return a.Decode(data)
}

// Decode parses a collection blob with the same fail-open policy as Load.
// Duplicate ids keep their first occurrence; records without an id are dropped.
func (a *Adapter) Decode(data []byte) []models.Note {
	if len(data) == 0 {
		return []models.Note{}
	}
	var list []models.Note
	if err := json.Unmarshal(data, &list); err != nil {
		a.logger.Warn("discarding corrupt notes data", "err", err, "bytes", len(data))
		return []models.Note{}
	}
	if list == nil {
		return []models.Note{}
	}
	list, dropped := notes.Dedupe(list)
	if dropped > 0 {
		a.logger.Warn("dropped notes with missing or duplicate ids", "count", dropped)
	}
	return list
}

// Encode serializes the collection. A nil collection encodes as [].
func Encode(list []models.Note) ([]byte, error) {
	if list == nil {
		list = []models.Note{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal notes: %w", err)
	}
	return data, nil
}

// Save overwrites the persisted collection with list.
func (a *Adapter) Save(list []models.Note) error {
	data, err := Encode(list)
	if err != nil {
		return err
	}
	if err := a.store.Set(a.key, data); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}
