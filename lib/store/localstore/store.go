package localstore

import (
	"sync"

	"triekv/lib/kv"
)

// Factory creates a new instance of the underlying KVStore.
type Factory func() kv.KVStore

// Store wraps a lib/kv.KVStore with a sync.RWMutex, making it safe to
// share across goroutines. Store itself implements kv.KVStore, so it is
// a drop-in replacement anywhere a bare engine would be used directly.
type Store struct {
	mu sync.RWMutex
	kv kv.KVStore
}

// New builds a Store around a KVStore created by factory.
func New(factory Factory) *Store {
	return &Store{kv: factory()}
}

var _ kv.KVStore = (*Store)(nil)

func (s *Store) Store(key, value []byte, flags byte) kv.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Store(key, value, flags)
}

// Fetch copies the returned content before releasing the lock: the
// engine's Response.Content borrow is only valid until the next
// mutating call, and without a copy a concurrent goroutine's Store or
// Remove could invalidate it before the caller gets to use it.
func (s *Store) Fetch(key []byte) kv.Response {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.kv.Fetch(key)
	if r.Ok() {
		r.Content = append([]byte(nil), r.Content...)
	}
	return r
}

func (s *Store) Remove(key []byte) kv.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Remove(key)
}

// FirstKey and NextKey take the write lock, not the read lock: the
// engine's iteration behavior under a concurrent mutation is undefined,
// so callers must be serialized against writers for the duration of a
// walk, not just against each other.
func (s *Store) FirstKey() kv.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.kv.FirstKey()
	if r.Ok() {
		r.Content = append([]byte(nil), r.Content...)
	}
	return r
}

func (s *Store) NextKey(previousKey []byte) kv.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.kv.NextKey(previousKey)
	if r.Ok() {
		r.Content = append([]byte(nil), r.Content...)
	}
	return r
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv.Clear()
}

func (s *Store) ClearSlice(slice byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv.ClearSlice(slice)
}

func (s *Store) Stats() kv.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kv.Stats()
}

func (s *Store) SupportsFeature(feature kv.Feature) bool {
	return s.kv.SupportsFeature(feature)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Close()
}
