// ABOUTME: In-process store shared between views through per-view handles.
// ABOUTME: A write through one handle notifies the subscriptions of all others.

package storage

import (
	"context"
	"sync"
)

// MemoryHub holds the data shared by its handles.
type MemoryHub struct {
	mu   sync.Mutex
	data map[string][]byte
	subs map[*memorySub]struct{}
}

type memorySub struct {
	owner  *MemoryStore
	key    string
	mu     sync.Mutex
	queue  []Change
	notify chan struct{}
}

// MemoryStore is one view's handle onto a MemoryHub.
type MemoryStore struct {
	hub    *MemoryHub
	mu     sync.Mutex
	closed bool
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{
		data: make(map[string][]byte),
		subs: make(map[*memorySub]struct{}),
	}
}

// Handle returns a new handle. Each view should use its own.
func (h *MemoryHub) Handle() *MemoryStore {
	return &MemoryStore{hub: h}
}

// Share returns another handle onto the same hub.
func (m *MemoryStore) Share() (Store, error) {
	if m.isClosed() {
		return nil, ErrClosed
	}
	return m.hub.Handle(), nil
}

func (m *MemoryStore) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	if m.isClosed() {
		return nil, false, ErrClosed
	}
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()
	v, ok := m.hub.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	if m.isClosed() {
		return ErrClosed
	}
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()
	m.hub.data[key] = append([]byte(nil), value...)
	for sub := range m.hub.subs {
		if sub.owner == m || sub.key != key {
			continue
		}
		sub.enqueue(Change{Key: key, NewValue: append([]byte(nil), value...)})
	}
	return nil
}

func (m *MemoryStore) Subscribe(ctx context.Context, key string, fn func(Change)) error {
	if m.isClosed() {
		return ErrClosed
	}
	sub := &memorySub{owner: m, key: key, notify: make(chan struct{}, 1)}

	m.hub.mu.Lock()
	m.hub.subs[sub] = struct{}{}
	m.hub.mu.Unlock()

	defer func() {
		m.hub.mu.Lock()
		delete(m.hub.subs, sub)
		m.hub.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.notify:
			for _, c := range sub.drain() {
				fn(c)
			}
		}
	}
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (s *memorySub) enqueue(c Change) {
	s.mu.Lock()
	s.queue = append(s.queue, c)
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *memorySub) drain() []Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queue
	s.queue = nil
	return q
}

func (h *MemoryHub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
