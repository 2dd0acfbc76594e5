package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

var errCorruptFile = errors.New("storage file is not a JSON object")

// File persists values as a JSON object in a single file. Every read goes
// to disk so writes from other processes are always visible.
type File struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewFile creates a file backend at path. The file is created lazily on the
// first write.
func NewFile(path string, logger zerolog.Logger) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage file path is required")
	}
	return &File{path: path, logger: logger}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the stored value.
func (f *File) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a value, rewriting the file atomically.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, _, err := f.loadForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return f.store(values)
}

// Remove deletes a value.
func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, discarded, err := f.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok && !discarded {
		return nil
	}
	delete(values, key)
	return f.store(values)
}

// Watch reports changes to key made through any handle on the same file,
// including other processes. It blocks until ctx is done.
func (f *File) Watch(ctx context.Context, key string, fn ChangeFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	// Watch the directory: atomic renames replace the file inode.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	last, lastOK := f.current(key)
	target := filepath.Clean(f.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, open := <-watcher.Events:
			if !open {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			value, ok := f.current(key)
			if value == last && ok == lastOK {
				continue
			}
			last, lastOK = value, ok
			fn(value, ok)
		case err, open := <-watcher.Errors:
			if !open {
				return nil
			}
			f.logger.Warn().Err(err).Str("path", f.path).Msg("storage watcher error")
		}
	}
}

func (f *File) current(key string) (string, bool) {
	value, err := f.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			f.logger.Debug().Err(err).Str("path", f.path).Msg("read watched key")
		}
		return "", false
	}
	return value, true
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read storage file %s: %w", f.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]string{}, nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse storage file %s: %w: %v", f.path, errCorruptFile, err)
	}
	return values, nil
}

// loadForWrite is load for Set and Remove: unparseable contents are dropped
// so the write replaces them. discarded reports that this happened.
func (f *File) loadForWrite() (values map[string]string, discarded bool, err error) {
	values, err = f.load()
	if errors.Is(err, errCorruptFile) {
		f.logger.Warn().Err(err).Str("path", f.path).Msg("discarding unreadable storage file")
		return map[string]string{}, true, nil
	}
	return values, false, err
}

func (f *File) store(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace storage file %s: %w", f.path, err)
	}
	return nil
}
