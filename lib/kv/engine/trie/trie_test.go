package trie

import (
	"fmt"
	"testing"

	"triekv/lib/kv"
	"triekv/lib/kv/engine/trie/internal"
	"triekv/lib/kv/kvtesting"
)

func TestEngine_Conformance(t *testing.T) {
	kvtesting.RunKVStoreTests(t, func() kv.KVStore {
		return New(Options{})
	})
}

func TestEngine_StoreReturnsAddThenReplace(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	if r := e.Store([]byte("k"), []byte("v1"), 0); r.Result != kv.ResultAdd {
		t.Fatalf("first store: got %v, want ResultAdd", r.Result)
	}
	if r := e.Store([]byte("k"), []byte("v2"), 0); r.Result != kv.ResultReplace {
		t.Fatalf("second store: got %v, want ResultReplace", r.Result)
	}

	r := e.Fetch([]byte("k"))
	if !r.Ok() || string(r.Content) != "v2" {
		t.Fatalf("fetch after replace: got %q, ok=%v", r.Content, r.Ok())
	}
}

func TestEngine_FetchMissingIsError(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	if r := e.Fetch([]byte("absent")); r.Ok() {
		t.Fatalf("fetch of absent key: got ok response")
	}
}

func TestEngine_RemoveThenFetchFails(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	e.Store([]byte("k"), []byte("v"), 0)
	if r := e.Remove([]byte("k")); !r.Ok() {
		t.Fatalf("remove: got error response")
	}
	if r := e.Remove([]byte("k")); r.Ok() {
		t.Fatalf("second remove: got ok response, want error")
	}
	if r := e.Fetch([]byte("k")); r.Ok() {
		t.Fatalf("fetch after remove: got ok response")
	}
}

func TestEngine_FlagsRoundTrip(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	e.Store([]byte("k"), []byte("v"), 0x42)
	r := e.Fetch([]byte("k"))
	if !r.Ok() || r.Flags != 0x42 {
		t.Fatalf("flags round trip: got %#x, want 0x42", r.Flags)
	}
}

func TestEngine_IterationVisitsEveryKeyExactlyOnce(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	const n = 500
	want := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("key-%d", i)
		want[k] = true
		e.Store([]byte(k), []byte("v"), 0)
	}

	got := make(map[string]bool, n)
	r := e.FirstKey()
	for r.Ok() {
		got[string(r.Content)] = true
		r = e.NextKey(r.Content)
	}

	if len(got) != len(want) {
		t.Fatalf("iteration visited %d keys, want %d", len(got), len(want))
	}
	for k := range want {
		if !got[k] {
			t.Fatalf("iteration missed key %q", k)
		}
	}
}

func TestEngine_NextKeyOnMissingKeyFails(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	e.Store([]byte("a"), []byte("v"), 0)
	if r := e.NextKey([]byte("never-stored")); r.Ok() {
		t.Fatalf("nextKey on missing key: got ok response")
	}
}

func TestEngine_ClearResetsStats(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	for i := 0; i < 50; i++ {
		e.Store([]byte(fmt.Sprintf("k%d", i)), []byte("v"), 0)
	}
	if s := e.Stats(); s.NumKeys != 50 {
		t.Fatalf("numKeys before clear = %d, want 50", s.NumKeys)
	}

	e.Clear()
	s := e.Stats()
	if s.NumKeys != 0 || s.MetaSize != 0 || s.DataSize != 0 {
		t.Fatalf("stats after clear: %+v, want all-zero except IndexSize", s)
	}
	if s.IndexSize == 0 {
		t.Fatalf("indexSize after clear = 0, want root node accounted")
	}
}

func TestEngine_ClearSliceOnlyAffectsThatSlice(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	// Store probe keys and partition them by their first digest nibble,
	// which selects the root slot (slice) each key lives under; the digest
	// is deterministic so this is stable.
	const targetSlice byte = 0
	var keysInSlice, keysOutsideSlice [][]byte
	for i := 0; i < 1000; i++ {
		k := []byte(fmt.Sprintf("probe-%d", i))
		e.Store(k, []byte("v"), 0)
		if internal.Compute(k)[0] == targetSlice {
			keysInSlice = append(keysInSlice, k)
		} else {
			keysOutsideSlice = append(keysOutsideSlice, k)
		}
	}
	if len(keysInSlice) == 0 || len(keysOutsideSlice) == 0 {
		t.Fatalf("probe keys do not fall on both sides of slice %d", targetSlice)
	}

	// Clearing the slice removes exactly the keys under it and leaves
	// every other key fetchable.
	before := e.Stats().NumKeys
	e.ClearSlice(targetSlice)
	after := e.Stats().NumKeys
	if after != before-uint64(len(keysInSlice)) {
		t.Fatalf("numKeys after ClearSlice = %d, want %d", after, before-uint64(len(keysInSlice)))
	}
	for _, k := range keysInSlice {
		if r := e.Fetch(k); r.Ok() {
			t.Fatalf("key %q in cleared slice still fetchable", k)
		}
	}
	for _, k := range keysOutsideSlice {
		if r := e.Fetch(k); !r.Ok() {
			t.Fatalf("key %q outside cleared slice lost", k)
		}
	}
}

func TestEngine_ReindexUnderManyCollidingKeys(t *testing.T) {
	e := New(Options{MaxBuckets: 4, ReindexScatter: 2})
	defer e.Close()

	const n = 2000
	for i := 0; i < n; i++ {
		k := []byte(fmt.Sprintf("collide-%d", i))
		if r := e.Store(k, []byte("v"), 0); !r.Ok() {
			t.Fatalf("store %d failed", i)
		}
	}
	for i := 0; i < n; i++ {
		k := []byte(fmt.Sprintf("collide-%d", i))
		if r := e.Fetch(k); !r.Ok() {
			t.Fatalf("fetch %d failed after reindexing", i)
		}
	}
	if s := e.Stats(); s.NumKeys != n {
		t.Fatalf("numKeys = %d, want %d", s.NumKeys, n)
	}
}

func TestEngine_SupportsFeature(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	for _, f := range []kv.Feature{kv.FeatureStore, kv.FeatureFetch, kv.FeatureRemove, kv.FeatureIterate, kv.FeatureClear, kv.FeatureClearSlice} {
		if !e.SupportsFeature(f) {
			t.Fatalf("feature %v not supported", f)
		}
	}
}

func TestEngine_StoreRejectsOversizedKey(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	oversized := make([]byte, 1<<16)
	if r := e.Store(oversized, []byte("v"), 0); r.Ok() {
		t.Fatalf("store of oversized key: got ok response")
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.MaxBuckets != 16 {
		t.Fatalf("default MaxBuckets = %d, want 16", o.MaxBuckets)
	}
	if o.ReindexScatter != 1 {
		t.Fatalf("default ReindexScatter = %d, want 1", o.ReindexScatter)
	}
}

func TestOptions_ScatterResetWhenSumExceeds256(t *testing.T) {
	e := New(Options{MaxBuckets: 250, ReindexScatter: 250})
	defer e.Close()
	// No direct accessor for the clamped value; exercise indirectly by
	// confirming many collisions still succeed without the store wedging.
	for i := 0; i < 600; i++ {
		k := []byte(fmt.Sprintf("scatter-%d", i))
		if r := e.Store(k, []byte("v"), 0); !r.Ok() {
			t.Fatalf("store %d failed", i)
		}
	}
}
