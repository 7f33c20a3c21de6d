// Package store persists the extension state as one opaque JSON blob in a
// pluggable key-value backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Backend stores one blob. Load returns nil when nothing was saved yet.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Close() error
}

// Listener is called with a copy of the new state after every successful
// write.
type Listener func(*State)

// Store reads and writes State through a Backend. Get always returns a
// fresh copy, so callers may hold it as an immutable snapshot.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps a backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		logger:    slog.Default(),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get loads the current state. A backend failure is reported as
// ErrUnavailable; an empty backend yields NewState().
func (s *Store) Get(ctx context.Context) (*State, error) {
	blob, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", ErrUnavailable, err)
	}
	st := NewState()
	if len(blob) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(blob, st); err != nil {
		return nil, &CorruptError{Cause: err}
	}
	st.normalize()
	return st, nil
}

// Set replaces the stored state and notifies listeners.
func (s *Store) Set(ctx context.Context, st *State) error {
	s.mu.Lock()
	err := s.save(ctx, st)
	listeners := s.snapshotListeners()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	notify(listeners, st)
	return nil
}

func (s *Store) save(ctx context.Context, st *State) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := s.backend.Save(ctx, blob); err != nil {
		return fmt.Errorf("%w: save: %w", ErrUnavailable, err)
	}
	s.logger.Debug("state saved", "bytes", len(blob))
	return nil
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func notify(listeners []Listener, st *State) {
	for _, l := range listeners {
		l(st.Clone())
	}
}

// Update applies fn to the current state and saves the result. Concurrent
// Updates on one Store are serialised. If fn returns an error nothing is
// written.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	st, err := s.Get(ctx)
	if err == nil {
		err = fn(st)
	}
	if err == nil {
		err = s.save(ctx, st)
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	notify(listeners, st)
	return nil
}

// OnChange registers l and returns a function that unregisters it.
// Listeners run synchronously on the writing goroutine, in registration
// order, after the write lock is released.
func (s *Store) OnChange(l Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
