// Package kvtesting provides a conformance test and benchmark suite that
// any lib/kv.KVStore implementation can run against itself.
package kvtesting
