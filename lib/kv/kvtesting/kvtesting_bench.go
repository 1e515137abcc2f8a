package kvtesting

import (
	"fmt"
	"testing"

	"triekv/lib/kv"
)

// RunKVStoreBenchmarks runs standard benchmarks against a KVStore
// implementation.
func RunKVStoreBenchmarks(b *testing.B, factory StoreFactory) {
	b.Run("Store", func(b *testing.B) {
		benchmarkStore(b, factory())
	})

	b.Run("StoreExisting", func(b *testing.B) {
		benchmarkStoreExisting(b, factory())
	})

	b.Run("Fetch", func(b *testing.B) {
		benchmarkFetch(b, factory())
	})

	b.Run("Remove", func(b *testing.B) {
		benchmarkRemove(b, factory())
	})

	b.Run("Iteration", func(b *testing.B) {
		benchmarkIteration(b, factory())
	})
}

func benchmarkStore(b *testing.B, store kv.KVStore) {
	b.Cleanup(func() { store.Close() })
	requireFeature(b, store, kv.FeatureStore)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := []byte(fmt.Sprintf("bench-key-%d", i))
		store.Store(key, []byte("bench-value"), 0)
	}
}

func benchmarkStoreExisting(b *testing.B, store kv.KVStore) {
	b.Cleanup(func() { store.Close() })
	requireFeature(b, store, kv.FeatureStore)

	store.Store([]byte("bench-key"), []byte("bench-value"), 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.Store([]byte("bench-key"), []byte(fmt.Sprintf("bench-value-%d", i)), 0)
	}
}

func benchmarkFetch(b *testing.B, store kv.KVStore) {
	b.Cleanup(func() { store.Close() })
	requireFeature(b, store, kv.FeatureStore)
	requireFeature(b, store, kv.FeatureFetch)

	const numKeys = 10000
	for i := 0; i < numKeys; i++ {
		key := []byte(fmt.Sprintf("bench-key-%d", i))
		store.Store(key, []byte("bench-value"), 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := []byte(fmt.Sprintf("bench-key-%d", i%numKeys))
		store.Fetch(key)
	}
}

func benchmarkRemove(b *testing.B, store kv.KVStore) {
	b.Cleanup(func() { store.Close() })
	requireFeature(b, store, kv.FeatureStore)
	requireFeature(b, store, kv.FeatureRemove)

	keys := make([][]byte, b.N)
	for i := 0; i < b.N; i++ {
		keys[i] = []byte(fmt.Sprintf("bench-key-%d", i))
		store.Store(keys[i], []byte("bench-value"), 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.Remove(keys[i])
	}
}

func benchmarkIteration(b *testing.B, store kv.KVStore) {
	b.Cleanup(func() { store.Close() })
	requireFeature(b, store, kv.FeatureStore)
	requireFeature(b, store, kv.FeatureIterate)

	const numKeys = 10000
	for i := 0; i < numKeys; i++ {
		key := []byte(fmt.Sprintf("bench-key-%d", i))
		store.Store(key, []byte("bench-value"), 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := store.FirstKey()
		for r.Ok() {
			r = store.NextKey(r.Content)
		}
	}
}
