// Package localstore adds external synchronization to a lib/kv.KVStore.
// The trie engine underneath has no internal locking; localstore wraps it
// with a sync.RWMutex so that one instance can be shared across
// goroutines, the way lstore wraps a db.KVDB for single-node use.
//
// Data is stored entirely in memory and is not persisted between process
// restarts.
package localstore
