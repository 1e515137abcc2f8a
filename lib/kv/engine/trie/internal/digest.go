// Package internal implements the digest/index/bucket primitives that back
// the trie engine in lib/kv/engine/trie. None of this is exported outside
// the engine package: callers only ever see lib/kv.KVStore.
package internal

// Size is the number of nibbles in a digest, which caps trie descent depth
// at 8 levels. Beyond that depth, collisions are resolved purely by chain
// walk.
const Size = 8

// FanOut is the number of slots in one index node, one per nibble value.
const FanOut = 16

// Digest is a fixed 8-nibble path derived from a key. Digest[i] selects the
// slot to follow at trie depth i. Each entry holds a value in 0..15.
type Digest [Size]byte

// Compute derives the digest of key. It hashes key with the DJB2
// algorithm (seed 5381, h = h*33 + b for each byte b), then splits the
// resulting 32-bit hash into its four high nibbles (positions 0..3) and
// four low nibbles (positions 4..7).
//
// DJB2 is fast and simple but not cryptographic and not keyed: an
// adversary who can choose keys can force arbitrarily long chains at a
// given slot. Callers with adversarial-input concerns must key their keys
// before handing them to Store/Fetch/Remove.
func Compute(key []byte) Digest {
	var hash uint32 = 5381
	for _, b := range key {
		hash = hash*33 + uint32(b)
	}

	var d Digest
	d[0] = byte(hash)
	d[1] = byte(hash >> 8)
	d[2] = byte(hash >> 16)
	d[3] = byte(hash >> 24)

	d[4] = d[0] % 16
	d[5] = d[1] % 16
	d[6] = d[2] % 16
	d[7] = d[3] % 16

	d[0] /= 16
	d[1] /= 16
	d[2] /= 16
	d[3] /= 16

	return d
}
