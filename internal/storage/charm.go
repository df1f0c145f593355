// ABOUTME: Charm KV store using the transactional Do API.
// ABOUTME: Short-lived connections; Subscribe polls the charm server for remote writes.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/dgraph-io/badger/v3"
)

const (
	// CharmDBName is the default charm kv database for jot.
	CharmDBName = "jot"

	defaultPollInterval = 5 * time.Second
)

// CharmStore does NOT hold a persistent connection. Each operation opens the
// database, performs the operation, and closes it.
type CharmStore struct {
	dbName         string
	host           string
	autoSync       bool
	staleThreshold time.Duration
	pollInterval   time.Duration

	mu   sync.Mutex
	seen map[string][]byte
}

// CharmOption configures a CharmStore.
type CharmOption func(*CharmStore)

// WithDBName sets the database name. Empty keeps the default.
func WithDBName(name string) CharmOption {
	return func(c *CharmStore) {
		if name != "" {
			c.dbName = name
		}
	}
}

// WithCharmHost points the client at a self-hosted charm server.
func WithCharmHost(host string) CharmOption {
	return func(c *CharmStore) {
		c.host = host
	}
}

// WithAutoSync enables or disables sync after writes.
func WithAutoSync(enabled bool) CharmOption {
	return func(c *CharmStore) {
		c.autoSync = enabled
	}
}

// WithStaleThreshold syncs before reads when the last sync is older than d.
func WithStaleThreshold(d time.Duration) CharmOption {
	return func(c *CharmStore) {
		c.staleThreshold = d
	}
}

// WithPollInterval sets how often Subscribe pulls from the server.
func WithPollInterval(d time.Duration) CharmOption {
	return func(c *CharmStore) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

func NewCharmStore(opts ...CharmOption) (*CharmStore, error) {
	c := &CharmStore{
		dbName:       CharmDBName,
		autoSync:     true,
		pollInterval: defaultPollInterval,
		seen:         make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.host != "" {
		if err := os.Setenv("CHARM_HOST", c.host); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DBName returns the charm kv database name.
func (c *CharmStore) DBName() string {
	return c.dbName
}

func (c *CharmStore) Get(key string) ([]byte, bool, error) {
	c.refresh()
	val, ok, err := c.read(key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		c.remember(key, val)
	}
	return val, ok, nil
}

func (c *CharmStore) read(key string) ([]byte, bool, error) {
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get([]byte(key))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("charm get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *CharmStore) Set(key string, value []byte) error {
	err := kv.Do(c.dbName, func(k *kv.KV) error {
		if err := k.Set([]byte(key), value); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("charm set %s: %w", key, err)
	}
	c.remember(key, value)
	return nil
}

// Subscribe pulls from the charm server every poll interval and reports
// values this handle has not written or seen.
func (c *CharmStore) Subscribe(ctx context.Context, key string, fn func(Change)) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Sync(); err != nil {
				// Offline: keep polling, local writes still land.
				continue
			}
			val, ok, err := c.read(key)
			if err != nil || !ok {
				continue
			}
			if c.known(key, val) {
				continue
			}
			c.remember(key, val)
			fn(Change{Key: key, NewValue: val})
		}
	}
}

func (c *CharmStore) remember(key string, value []byte) {
	c.mu.Lock()
	c.seen[key] = append([]byte(nil), value...)
	c.mu.Unlock()
}

func (c *CharmStore) known(key string, value []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, ok := c.seen[key]
	return ok && bytes.Equal(prev, value)
}

// Sync pushes local writes to the charm server and pulls everyone else's.
func (c *CharmStore) Sync() error {
	if err := kv.Do(c.dbName, (*kv.KV).Sync); err != nil {
		return fmt.Errorf("charm sync %s: %w", c.dbName, err)
	}
	return nil
}

// replicaState reports when the local replica last synced and whether that
// is older than the stale threshold. A zero threshold never goes stale.
func (c *CharmStore) replicaState() (last time.Time, stale bool) {
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		last = k.LastSyncTime()
		stale = c.staleThreshold > 0 && k.IsStale(c.staleThreshold)
		return nil
	})
	return last, stale
}

func (c *CharmStore) LastSyncTime() time.Time {
	last, _ := c.replicaState()
	return last
}

func (c *CharmStore) IsStale() bool {
	_, stale := c.replicaState()
	return stale
}

// refresh pulls before a read when the replica is stale. Offline, reads
// serve the local replica.
func (c *CharmStore) refresh() {
	if _, stale := c.replicaState(); stale {
		_ = c.Sync()
	}
}

// Reset clears local data; cloud data is kept.
func (c *CharmStore) Reset() error {
	return kv.Reset(c.dbName)
}

// User returns the current charm user information.
func (c *CharmStore) User() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}

// Link initiates the charm linking process for this device.
func (c *CharmStore) Link() error {
	_, err := c.User()
	return err
}

// Close is a no-op. With the Do API, connections close after each operation.
func (c *CharmStore) Close() error {
	return nil
}
