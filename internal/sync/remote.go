// ABOUTME: Optional remote replication for backends that support it.
// ABOUTME: Provides the silent-fail pattern for sync from CLI commands.

package sync

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/jot/internal/storage"
)

var ErrNotReplicated = errors.New("backend does not support remote sync")

// Remote is a store that replicates to a server.
type Remote interface {
	Sync() error
	LastSyncTime() time.Time
	IsStale() bool
}

// Status describes the replication state of a store.
type Status struct {
	Supported bool
	LastSync  time.Time
	Stale     bool
}

// AsRemote returns the store's Remote side, if it has one.
func AsRemote(store storage.Store) (Remote, bool) {
	r, ok := store.(Remote)
	return r, ok
}

// Now forces a sync. It fails with ErrNotReplicated on local-only backends.
func Now(store storage.Store) error {
	r, ok := AsRemote(store)
	if !ok {
		return ErrNotReplicated
	}
	return r.Sync()
}

// TrySync pulls remote changes when the store replicates and its data is
// stale. Failures are logged and swallowed; local data stays usable.
func TrySync(store storage.Store, logger *log.Logger) {
	r, ok := AsRemote(store)
	if !ok || !r.IsStale() {
		return
	}
	if err := r.Sync(); err != nil && logger != nil {
		logger.Warn("sync failed, using local data", "err", err)
	}
}

// StatusOf reports the replication state of store.
func StatusOf(store storage.Store) Status {
	r, ok := AsRemote(store)
	if !ok {
		return Status{}
	}
	return Status{
		Supported: true,
		LastSync:  r.LastSyncTime(),
		Stale:     r.IsStale(),
	}
}
