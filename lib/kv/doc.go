// Package kv defines the storage interface shared by all key-value engines
// in this repository. It provides a minimal, allocation-aware contract
// (KVStore), a value-type response (Response) carrying result codes instead
// of exceptions, capability flags (Feature) so callers can probe what an
// engine supports, and a live Stats snapshot for memory accounting.
//
// Implementations of KVStore are expected to be single-threaded: the
// interface carries no locking and makes no promises about concurrent
// access. Callers that need concurrent access should wrap an
// implementation with lib/store/localstore, which adds a mutex around any
// KVStore.
//
// The only implementation shipped in this repository is
// lib/kv/engine/trie, a digest-trie with bucket-chain leaves. Additional
// engines can be added by implementing KVStore directly.
package kv
