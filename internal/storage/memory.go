package storage

import (
	"context"
	"sync"
)

// Memory is an in-process backend. Handles returned by Share see the same
// values; a write through one handle is reported to watchers registered on
// the other handles, never to the writer's own watchers. Notifications are
// delivered on the watching goroutine in write order.
type Memory struct {
	id    int
	state *memoryState
}

type memoryState struct {
	mu        sync.RWMutex
	values    map[string]string
	nextID    int
	nextWatch int
	watchers  map[int]*memoryWatch
}

type memoryChange struct {
	value string
	ok    bool
}

type memoryWatch struct {
	owner   int
	key     string
	pending []memoryChange
	signal  chan struct{}
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{state: &memoryState{
		values:   make(map[string]string),
		nextID:   1,
		watchers: make(map[int]*memoryWatch),
	}}
}

// Share returns another handle on the same values.
func (m *Memory) Share() *Memory {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	id := m.state.nextID
	m.state.nextID++
	return &Memory{id: id, state: m.state}
}

// Get returns the stored value.
func (m *Memory) Get(key string) (string, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	value, ok := m.state.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a value.
func (m *Memory) Set(key, value string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	m.state.values[key] = value
	m.state.publish(m.id, key, memoryChange{value: value, ok: true})
	return nil
}

// Remove deletes a value.
func (m *Memory) Remove(key string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if _, ok := m.state.values[key]; !ok {
		return nil
	}
	delete(m.state.values, key)
	m.state.publish(m.id, key, memoryChange{})
	return nil
}

// Watch calls fn for writes to key made through other handles until ctx
// is done.
func (m *Memory) Watch(ctx context.Context, key string, fn ChangeFunc) error {
	w := &memoryWatch{owner: m.id, key: key, signal: make(chan struct{}, 1)}

	m.state.mu.Lock()
	id := m.state.nextWatch
	m.state.nextWatch++
	m.state.watchers[id] = w
	m.state.mu.Unlock()

	defer func() {
		m.state.mu.Lock()
		delete(m.state.watchers, id)
		m.state.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.signal:
			m.state.mu.Lock()
			changes := w.pending
			w.pending = nil
			m.state.mu.Unlock()

			for _, change := range changes {
				fn(change.value, change.ok)
			}
		}
	}
}

// watcherCount reports registered watchers.
func (m *Memory) watcherCount() int {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return len(m.state.watchers)
}

// publish must be called with mu held.
func (s *memoryState) publish(writer int, key string, change memoryChange) {
	for _, w := range s.watchers {
		if w.key != key || w.owner == writer {
			continue
		}
		w.pending = append(w.pending, change)
		select {
		case w.signal <- struct{}{}:
		default:
		}
	}
}
