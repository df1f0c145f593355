// ABOUTME: Cross-view synchronization over storage change notifications.
// ABOUTME: Delivers payloads written by other views to a target on one goroutine.

package sync

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/harper/jot/internal/storage"
)

var ErrNoStore = errors.New("sync: no store")

// Target receives the full serialized collection after another view writes it.
// A nil payload means the key was cleared.
type Target interface {
	OnExternalSync(payload []byte)
}

// TargetFunc adapts a function to Target.
type TargetFunc func([]byte)

func (f TargetFunc) OnExternalSync(payload []byte) { f(payload) }

// Listener forwards changes of Key in Store to Target until its context ends.
type Listener struct {
	Store  storage.Store
	Key    string
	Target Target
	Logger *log.Logger
}

// Run blocks, delivering each change to Target. It returns nil when ctx is
// cancelled.
func (l *Listener) Run(ctx context.Context) error {
	if l.Store == nil {
		return ErrNoStore
	}
	return l.Store.Subscribe(ctx, l.Key, func(c storage.Change) {
		if l.Logger != nil {
			l.Logger.Debug("external change", "key", c.Key, "bytes", len(c.NewValue))
		}
		l.Target.OnExternalSync(c.NewValue)
	})
}

// Watch subscribes to key and returns a channel of changes. The channel is
// closed when ctx ends or the subscription fails. Delivery blocks while the
// channel is full, so changes are never dropped.
func Watch(ctx context.Context, store storage.Store, key string) <-chan storage.Change {
	ch := make(chan storage.Change, 16)
	go func() {
		defer close(ch)
		_ = store.Subscribe(ctx, key, func(c storage.Change) {
			select {
			case ch <- c:
			case <-ctx.Done():
			}
		})
	}()
	return ch
}
