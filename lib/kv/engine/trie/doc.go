// Package trie implements lib/kv.KVStore as a digest-trie of 16-way index
// nodes with bucket collision chains at the leaves. It is the module's only
// KVStore implementation; everything else builds on top of it.
//
// The engine is not safe for concurrent use. Wrap it with
// lib/store/localstore to share one instance across goroutines.
package trie
