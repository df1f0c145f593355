// ABOUTME: String-keyed key/value store abstraction with change notifications.
// ABOUTME: Backends: in-process memory hub, files+fsnotify, badger, charm kv.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrClosed         = errors.New("store closed")
	ErrLocked         = errors.New("store is in use by another process")
	ErrNotShareable   = errors.New("store cannot open another view")
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Change reports that key was written by another handle.
// NewValue is nil when the key was removed.
type Change struct {
	Key      string
	NewValue []byte
}

// Store is an opaque string-keyed store. Subscribe blocks until ctx is done
// and delivers only changes made through other handles, in write order.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Subscribe(ctx context.Context, key string, fn func(Change)) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string

	CharmHost      string
	CharmDB        string
	AutoSync       bool
	StaleThreshold time.Duration
	PollInterval   time.Duration

	Logger *log.Logger
}

// Open returns a store for opts.Backend. The caller owns the returned store.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Dir, opts.Logger)
	case BackendBadger:
		db, err := OpenBadger(filepath.Join(opts.Dir, "badger"))
		if err != nil {
			return nil, err
		}
		return db.ownedHandle(), nil
	case BackendCharm:
		return NewCharmStore(
			WithCharmHost(opts.CharmHost),
			WithDBName(opts.CharmDB),
			WithAutoSync(opts.AutoSync),
			WithStaleThreshold(opts.StaleThreshold),
			WithPollInterval(opts.PollInterval),
		)
	case BackendMemory:
		return NewMemoryHub().Handle(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Sharer is implemented by stores that can open another handle onto the same
// data inside this process. Each handle sees the others' writes as changes.
type Sharer interface {
	Share() (Store, error)
}

// Share returns a new handle onto s's data, or ErrNotShareable.
// The caller closes the returned handle before s.
func Share(s Store) (Store, error) {
	sh, ok := s.(Sharer)
	if !ok {
		return nil, ErrNotShareable
	}
	return sh.Share()
}

// echoQueue tracks values written by a handle so their notifications can be
// recognised and dropped. Values echo in write order.
type echoQueue [][]byte

func (q *echoQueue) push(v []byte) {
	*q = append(*q, append([]byte(nil), v...))
}

// match pops the head if it equals v.
func (q *echoQueue) match(v []byte) bool {
	if len(*q) == 0 || !bytes.Equal((*q)[0], v) {
		return false
	}
	*q = (*q)[1:]
	return true
}

// drop removes the most recent push after a failed write.
func (q *echoQueue) drop() {
	if len(*q) > 0 {
		*q = (*q)[:len(*q)-1]
	}
}
