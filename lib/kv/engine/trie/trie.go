package trie

import (
	"triekv/lib/kv"
	"triekv/lib/kv/engine/trie/internal"
)

// Engine is the digest-trie KVStore implementation. Its zero value is not
// usable; construct one with New.
type Engine struct {
	t *internal.Trie
}

// New builds an Engine. See Options for the tunables' defaults and
// clamping rules.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{t: internal.New(opts.MaxBuckets, opts.ReindexScatter)}
}

var _ kv.KVStore = (*Engine)(nil)

func (e *Engine) Store(key, value []byte, flags byte) kv.Response {
	result, ok := e.t.Store(key, value, flags)
	if !ok {
		return kv.Response{Result: kv.ResultError}
	}
	switch result {
	case internal.ResultAdded:
		return kv.Response{Result: kv.ResultAdd}
	case internal.ResultReplaced:
		return kv.Response{Result: kv.ResultReplace}
	default:
		return kv.Response{Result: kv.ResultError}
	}
}

func (e *Engine) Fetch(key []byte) kv.Response {
	value, flags, found := e.t.Fetch(key)
	if !found {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk, Flags: flags, Content: value}
}

func (e *Engine) Remove(key []byte) kv.Response {
	if !e.t.Remove(key) {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk}
}

func (e *Engine) FirstKey() kv.Response {
	key, found := e.t.FirstKey()
	if !found {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk, Content: key}
}

func (e *Engine) NextKey(previousKey []byte) kv.Response {
	key, found := e.t.NextKey(previousKey)
	if !found {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk, Content: key}
}

func (e *Engine) Clear() {
	e.t.Clear()
}

func (e *Engine) ClearSlice(slice byte) {
	e.t.ClearSlice(slice)
}

func (e *Engine) Stats() kv.Stats {
	s := e.t.Stats()
	return kv.Stats{
		NumKeys:   s.NumKeys,
		IndexSize: s.IndexSize,
		MetaSize:  s.MetaSize,
		DataSize:  s.DataSize,
	}
}

func (e *Engine) SupportsFeature(feature kv.Feature) bool {
	const supported = kv.FeatureStore | kv.FeatureFetch | kv.FeatureRemove |
		kv.FeatureIterate | kv.FeatureClear | kv.FeatureClearSlice
	return feature&supported == feature
}

func (e *Engine) Close() error {
	return nil
}
