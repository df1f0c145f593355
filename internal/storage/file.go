// ABOUTME: File-backed store: one JSON file per key under a data directory.
// ABOUTME: fsnotify delivers writes made by other processes as changes.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = ".jot-tmp-"

	fileExt = ".json"
)

// FileStore keeps each key in <dir>/<key>.json. Several processes may share
// a directory; each sees the others' writes through Subscribe.
type FileStore struct {
	dir    string
	logger *log.Logger

	mu sync.Mutex
	// seen is the last value this handle wrote, read or delivered per key.
	// Events whose content matches it carry nothing new.
	seen   map[string][]byte
	closed bool
}

func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileStore{
		dir:    dir,
		logger: logger,
		seen:   make(map[string][]byte),
	}, nil
}

// Share returns another handle onto the same directory.
func (f *FileStore) Share() (Store, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	return NewFileStore(f.dir, f.logger)
}

// Path returns the file backing key.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

func (f *FileStore) Get(key string) ([]byte, bool, error) {
	if f.isClosed() {
		return nil, false, ErrClosed
	}
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	f.remember(key, data)
	return data, true, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	if f.isClosed() {
		return ErrClosed
	}
	// Remember first: the watcher may observe the rename before Set returns.
	f.mu.Lock()
	prev, had := f.seen[key]
	f.seen[key] = append([]byte{}, value...)
	f.mu.Unlock()

	if err := writeFileAtomic(f.Path(key), value, 0o600); err != nil {
		f.mu.Lock()
		if had {
			f.seen[key] = prev
		} else {
			delete(f.seen, key)
		}
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *FileStore) Subscribe(ctx context.Context, key string, fn func(Change)) error {
	if f.isClosed() {
		return ErrClosed
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: atomic renames replace the file's inode.
	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("watch %s: %w", f.dir, err)
	}

	target := f.Path(key)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if c, ok := f.observe(key); ok {
				fn(c)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("file watcher error", "dir", f.dir, "err", err)
		}
	}
}

// observe reads the current content of key and reports it as a change unless
// this handle already knows it.
func (f *FileStore) observe(key string) (Change, bool) {
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		data = nil
	} else if err != nil {
		f.logger.Warn("read changed file", "key", key, "err", err)
		return Change{}, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	prev, known := f.seen[key]
	if known && bytes.Equal(prev, data) && (prev == nil) == (data == nil) {
		return Change{}, false
	}
	f.seen[key] = data
	return Change{Key: key, NewValue: data}, true
}

func (f *FileStore) remember(key string, value []byte) {
	f.mu.Lock()
	f.seen[key] = append([]byte{}, value...)
	f.mu.Unlock()
}

func (f *FileStore) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}
