// Package kvutil provides standalone reporting helpers: a
// size-distribution histogram for per-entry key/value sizes, and summary
// statistics over float64 samples for comparing distribution quality
// (e.g. key counts per shard or per slice). It does not read lib/kv.Stats
// itself; callers feed it the samples.
package kvutil
