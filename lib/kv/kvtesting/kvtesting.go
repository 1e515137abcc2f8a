package kvtesting

import (
	"bytes"
	"fmt"
	"testing"

	"triekv/lib/kv"
)

// StoreFactory creates a new, empty instance of a KVStore implementation.
type StoreFactory func() kv.KVStore

// RunKVStoreTests runs a comprehensive test suite against a KVStore
// implementation, constructing a fresh instance for every subtest.
func RunKVStoreTests(t *testing.T, factory StoreFactory) {
	t.Run("StoreFetch", func(t *testing.T) {
		testStoreFetch(t, factory())
	})

	t.Run("StoreReplace", func(t *testing.T) {
		testStoreReplace(t, factory())
	})

	t.Run("Remove", func(t *testing.T) {
		testRemove(t, factory())
	})

	t.Run("FetchBorrowIsNotAliased", func(t *testing.T) {
		testFetchBorrowIsNotAliased(t, factory())
	})

	t.Run("Iteration", func(t *testing.T) {
		testIteration(t, factory())
	})

	t.Run("ClearAndClearSlice", func(t *testing.T) {
		testClearAndClearSlice(t, factory())
	})

	t.Run("EdgeCases", func(t *testing.T) {
		testEdgeCases(t, factory())
	})

	t.Run("RealisticUsage", func(t *testing.T) {
		testRealisticUsage(t, factory())
	})
}

// requireFeature skips the calling test if store does not advertise
// feature.
func requireFeature(t testing.TB, store kv.KVStore, feature kv.Feature) {
	if !store.SupportsFeature(feature) {
		t.Skip()
	}
}

func testStoreFetch(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureFetch)

	key := []byte("hello")
	value := []byte("world")

	r := store.Store(key, value, 0)
	if r.Result != kv.ResultAdd {
		t.Fatalf("Store of new key: got %v, want ResultAdd", r.Result)
	}

	r = store.Fetch(key)
	if !r.Ok() {
		t.Fatalf("Fetch: store reported key not found")
	}
	if !bytes.Equal(r.Content, value) {
		t.Fatalf("Fetch: got %q, want %q", r.Content, value)
	}

	r = store.Fetch([]byte("missing"))
	if r.Ok() {
		t.Fatalf("Fetch of missing key: got ok response")
	}
}

func testStoreReplace(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureFetch)

	key := []byte("k")

	r := store.Store(key, []byte("v1"), 0)
	if r.Result != kv.ResultAdd {
		t.Fatalf("first Store: got %v, want ResultAdd", r.Result)
	}

	r = store.Store(key, []byte("v2"), 0)
	if r.Result != kv.ResultReplace {
		t.Fatalf("second Store: got %v, want ResultReplace", r.Result)
	}

	r = store.Fetch(key)
	if !r.Ok() || !bytes.Equal(r.Content, []byte("v2")) {
		t.Fatalf("Fetch after replace: got %q", r.Content)
	}
}

func testRemove(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureFetch)
	requireFeature(t, store, kv.FeatureRemove)

	key := []byte("k")
	store.Store(key, []byte("v"), 0)

	if r := store.Remove(key); !r.Ok() {
		t.Fatalf("Remove of present key: got error response")
	}
	if r := store.Fetch(key); r.Ok() {
		t.Fatalf("Fetch after Remove: got ok response")
	}
	if r := store.Remove(key); r.Ok() {
		t.Fatalf("Remove of already-removed key: got ok response")
	}
}

func testFetchBorrowIsNotAliased(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureFetch)

	key := []byte("k")
	store.Store(key, []byte("original"), 0)

	r1 := store.Fetch(key)
	store.Store(key, []byte("overwritten"), 0)
	r2 := store.Fetch(key)

	if bytes.Equal(r1.Content, r2.Content) {
		t.Fatalf("Fetch content should not alias across an intervening Store")
	}
}

func testIteration(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureIterate)

	const n = 200
	want := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("iter-%d", i)
		want[k] = true
		store.Store([]byte(k), []byte("v"), 0)
	}

	got := make(map[string]bool, n)
	r := store.FirstKey()
	for r.Ok() {
		key := append([]byte(nil), r.Content...)
		if got[string(key)] {
			t.Fatalf("key %q visited more than once", key)
		}
		got[string(key)] = true
		r = store.NextKey(key)
	}

	if len(got) != len(want) {
		t.Fatalf("iteration visited %d keys, want %d", len(got), len(want))
	}
}

func testClearAndClearSlice(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureClear)

	for i := 0; i < 20; i++ {
		store.Store([]byte(fmt.Sprintf("k%d", i)), []byte("v"), 0)
	}
	store.Clear()
	if s := store.Stats(); s.NumKeys != 0 {
		t.Fatalf("NumKeys after Clear = %d, want 0", s.NumKeys)
	}

	if store.SupportsFeature(kv.FeatureClearSlice) {
		for i := 0; i < 20; i++ {
			store.Store([]byte(fmt.Sprintf("k%d", i)), []byte("v"), 0)
		}
		before := store.Stats().NumKeys
		store.ClearSlice(0)
		after := store.Stats().NumKeys
		if after > before {
			t.Fatalf("NumKeys grew after ClearSlice: before=%d after=%d", before, after)
		}
	}
}

func testEdgeCases(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureFetch)

	if r := store.Store([]byte{}, []byte("v"), 0); !r.Ok() {
		t.Fatalf("Store with empty key: got error response")
	}
	if r := store.Fetch([]byte{}); !r.Ok() {
		t.Fatalf("Fetch of empty key: got error response")
	}

	if r := store.Store([]byte("k"), []byte{}, 0); !r.Ok() {
		t.Fatalf("Store with empty value: got error response")
	}
	if r := store.Fetch([]byte("k")); !r.Ok() || len(r.Content) != 0 {
		t.Fatalf("Fetch of empty value: got %q", r.Content)
	}
}

func testRealisticUsage(t *testing.T, store kv.KVStore) {
	defer store.Close()

	requireFeature(t, store, kv.FeatureStore)
	requireFeature(t, store, kv.FeatureFetch)
	requireFeature(t, store, kv.FeatureRemove)

	const n = 1000
	present := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("user:%d", i)
		v := []byte(fmt.Sprintf("payload-%d", i))
		present[k] = v
		store.Store([]byte(k), v, 0)
	}

	for i := 0; i < n; i += 3 {
		k := fmt.Sprintf("user:%d", i)
		store.Remove([]byte(k))
		delete(present, k)
	}

	for k, v := range present {
		r := store.Fetch([]byte(k))
		if !r.Ok() || !bytes.Equal(r.Content, v) {
			t.Fatalf("Fetch(%q) = %q, want %q", k, r.Content, v)
		}
	}

	if s := store.Stats(); s.NumKeys != uint64(len(present)) {
		t.Fatalf("NumKeys = %d, want %d", s.NumKeys, len(present))
	}
}
