// Package storage provides the durable key-value backends the theme store
// persists into.
package storage

import (
	"context"
	"errors"
)

// Storage errors.
var (
	ErrNotFound    = errors.New("key not found")
	ErrUnavailable = errors.New("storage unavailable")
)

// Storage is a synchronous string key-value store.
type Storage interface {
	// Get returns ErrNotFound when the key has no value.
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// ChangeFunc receives the new value of a watched key. ok is false when the
// key was removed.
type ChangeFunc func(value string, ok bool)

// Watcher is implemented by backends that can report writes made by other
// processes or handles sharing the same underlying store.
type Watcher interface {
	// Watch blocks until ctx is done, calling fn for each change to key.
	Watch(ctx context.Context, key string, fn ChangeFunc) error
}

// Unavailable is a backend that fails every operation, modelling an
// environment without persistent storage.
type Unavailable struct{}

// Get always fails.
func (Unavailable) Get(string) (string, error) {
	return "", ErrUnavailable
}

// Set always fails.
func (Unavailable) Set(string, string) error {
	return ErrUnavailable
}

// Remove always fails.
func (Unavailable) Remove(string) error {
	return ErrUnavailable
}
