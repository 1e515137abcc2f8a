package localstore

import (
	"fmt"
	"sync"
	"testing"

	"triekv/lib/kv"
	"triekv/lib/kv/engine/trie"
	"triekv/lib/kv/kvtesting"
)

func newTestStore() *Store {
	return New(func() kv.KVStore { return trie.New(trie.Options{}) })
}

func TestStore_Conformance(t *testing.T) {
	kvtesting.RunKVStoreTests(t, func() kv.KVStore { return newTestStore() })
}

func TestStore_FetchContentSurvivesConcurrentOverwrite(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	key := []byte("k")
	s.Store(key, []byte("original"), 0)

	r := s.Fetch(key)
	if !r.Ok() {
		t.Fatalf("Fetch: got error response")
	}
	content := append([]byte(nil), r.Content...)

	s.Store(key, []byte("overwritten"), 0)

	if string(r.Content) != string(content) {
		t.Fatalf("Fetch content mutated after a later Store: got %q, want %q", r.Content, content)
	}
}

func TestStore_ConcurrentStoreAndFetch(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	const numWriters = 8
	const keysPerWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < numWriters; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			for i := 0; i < keysPerWriter; i++ {
				key := []byte(fmt.Sprintf("w%d-k%d", writer, i))
				s.Store(key, []byte("v"), 0)
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < numWriters; w++ {
		for i := 0; i < keysPerWriter; i++ {
			key := []byte(fmt.Sprintf("w%d-k%d", w, i))
			if r := s.Fetch(key); !r.Ok() {
				t.Fatalf("Fetch(%q) failed after concurrent stores", key)
			}
		}
	}

	if s.Stats().NumKeys != uint64(numWriters*keysPerWriter) {
		t.Fatalf("NumKeys = %d, want %d", s.Stats().NumKeys, numWriters*keysPerWriter)
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	for i := 0; i < 100; i++ {
		s.Store([]byte(fmt.Sprintf("k%d", i)), []byte("v"), 0)
	}

	var wg sync.WaitGroup
	for r := 0; r < 16; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Fetch([]byte(fmt.Sprintf("k%d", i)))
			}
		}()
	}
	wg.Wait()
}
