// Package store provides the Error/RetCode vocabulary used by anything
// layered above a lib/kv.KVStore, and the lib/store/localstore
// implementation that adds external synchronization to an otherwise
// single-threaded KVStore engine.
//
// A lib/kv.KVStore already defines the storage operations themselves
// through Response values; this package only adds what a caller further
// up the stack needs once a plain Response stops being enough, namely a
// Go error carrying a RetCode.
package store
