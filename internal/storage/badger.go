// ABOUTME: Badger-backed store for several views inside one process.
// ABOUTME: Handles share one badger.DB; Subscribe uses badger's key subscriptions.

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/pb"
)

// BadgerDB owns the database. Badger locks its directory, so views that need
// to share it must live in the same process and take a Handle each.
type BadgerDB struct {
	db *badger.DB
}

// BadgerStore is one view's handle onto a BadgerDB.
type BadgerStore struct {
	owner *BadgerDB
	// closeDB is set for handles returned by Open, which own the database.
	closeDB bool

	mu   sync.Mutex
	subs map[*badgerSub]struct{}
}

type badgerSub struct {
	key     string
	pending echoQueue
}

func OpenBadger(dir string) (*BadgerDB, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create badger directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
		}
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerDB{db: db}, nil
}

// Handle returns a new handle. Closing a handle does not close the database.
func (b *BadgerDB) Handle() *BadgerStore {
	return &BadgerStore{owner: b, subs: make(map[*badgerSub]struct{})}
}

func (b *BadgerDB) ownedHandle() *BadgerStore {
	h := b.Handle()
	h.closeDB = true
	return h
}

func (b *BadgerDB) Close() error {
	return b.db.Close()
}

func (s *BadgerStore) Get(key string) ([]byte, bool, error) {
	var val []byte
	err := s.owner.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *BadgerStore) Set(key string, value []byte) error {
	// Register the echo before writing so the notification cannot overtake it.
	s.mu.Lock()
	var mine []*badgerSub
	for sub := range s.subs {
		if sub.key == key {
			sub.pending.push(value)
			mine = append(mine, sub)
		}
	}
	s.mu.Unlock()

	err := s.owner.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		s.mu.Lock()
		for _, sub := range mine {
			sub.pending.drop()
		}
		s.mu.Unlock()
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Subscribe(ctx context.Context, key string, fn func(Change)) error {
	sub := &badgerSub{key: key}
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.subs, sub)
		s.mu.Unlock()
	}()

	match := []pb.Match{{Prefix: []byte(key)}}
	err := s.owner.db.Subscribe(ctx, func(list *badger.KVList) error {
		for _, kv := range list.Kv {
			if string(kv.Key) != key {
				continue
			}
			s.mu.Lock()
			own := sub.pending.match(kv.Value)
			s.mu.Unlock()
			if own {
				continue
			}
			fn(Change{Key: key, NewValue: append([]byte(nil), kv.Value...)})
		}
		return nil
	}, match)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Share returns another handle onto the same database.
func (s *BadgerStore) Share() (Store, error) {
	return s.owner.Handle(), nil
}

func (s *BadgerStore) Close() error {
	if s.closeDB {
		return s.owner.Close()
	}
	return nil
}
