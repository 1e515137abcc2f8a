package internal

// Trie is the single-threaded digest-trie/bucket-chain store. It has no
// internal locking: concurrent callers must serialize access themselves
// (see lib/store/localstore).
type Trie struct {
	root           *indexNode
	maxBuckets     byte
	reindexScatter byte
	stats          Stats
}

// Result reports the outcome of a Store call.
type Result uint8

const (
	ResultError Result = iota
	ResultAdded
	ResultReplaced
)

// New builds an empty trie. maxBuckets is clamped to at least 1.
// reindexScatter is clamped to at least 1, then reset to 1 if
// maxBuckets+reindexScatter would exceed 256.
func New(maxBuckets, reindexScatter byte) *Trie {
	if maxBuckets < 1 {
		maxBuckets = 1
	}
	if reindexScatter < 1 {
		reindexScatter = 1
	}
	if int(maxBuckets)+int(reindexScatter) > 256 {
		reindexScatter = 1
	}

	t := &Trie{
		root:           newIndexNode(),
		maxBuckets:     maxBuckets,
		reindexScatter: reindexScatter,
	}
	t.stats.IndexSize = indexNodeSize
	return t
}

// setSlot assigns b to node's slot idx, taking care not to store a typed
// nil *bucket behind the tag interface (which would make the slot
// non-empty to a nil check).
func setSlot(node *indexNode, idx byte, b *bucket) {
	if b == nil {
		node.slots[idx] = nil
	} else {
		node.slots[idx] = b
	}
}

// Store inserts or replaces key's value. ok is false only when key or
// value exceeds the packed record's length limits; the trie is left
// unchanged in that case.
func (t *Trie) Store(key, value []byte, flags byte) (result Result, ok bool) {
	rec, sizeOK := newRecord(key, value)
	if !sizeOK {
		return ResultError, false
	}

	d := Compute(key)
	node := t.root
	i := 0

	for i < Size {
		idx := d[i]
		switch v := node.slots[idx].(type) {
		case nil:
			node.slots[idx] = &bucket{flags: flags, rec: rec}
			t.stats.NumKeys++
			t.stats.MetaSize += bucketHeaderSize
			t.stats.DataSize += uint64(rec.size())
			return ResultAdded, true

		case *indexNode:
			node = v
			i++

		case *bucket:
			if existing := findInChain(v, key); existing != nil {
				t.stats.DataSize -= uint64(existing.rec.size())
				existing.rec = rec
				existing.flags = flags
				t.stats.DataSize += uint64(rec.size())
				return ResultReplaced, true
			}

			if chainLength(v) >= int(t.maxBuckets) && i < Size-1 {
				newNode := t.reindexChain(v, i)
				node.slots[idx] = newNode
				t.stats.IndexSize += indexNodeSize
				node = newNode
				i++
				continue
			}

			node.slots[idx] = prepend(v, &bucket{flags: flags, rec: rec})
			t.stats.NumKeys++
			t.stats.MetaSize += bucketHeaderSize
			t.stats.DataSize += uint64(rec.size())
			return ResultAdded, true
		}
	}

	// Digest exhausted without resolving a slot; cannot happen given the
	// depth guard above, but fail safely rather than loop forever.
	return ResultError, false
}

// reindexChain replaces a chain found at depth (the digest index used to
// reach it) with a fresh index node, redistributing its buckets by
// digest[depth+1]. Sub-chains that still exceed maxBuckets+reindexScatter
// after redistribution are reindexed again immediately, so a single
// pathological collision run is absorbed in one Store call rather than
// re-triggering on every subsequent one.
func (t *Trie) reindexChain(head *bucket, depth int) *indexNode {
	newNode := newIndexNode()

	for b := head; b != nil; {
		next := b.next
		b.next = nil

		slot := Compute(b.rec.key())[depth+1]
		switch existing := newNode.slots[slot].(type) {
		case nil:
			newNode.slots[slot] = b
		case *bucket:
			newNode.slots[slot] = prepend(existing, b)
		}
		b = next
	}

	threshold := int(t.maxBuckets) + int(t.reindexScatter)
	for slot := 0; slot < FanOut; slot++ {
		sub, isBucket := newNode.slots[slot].(*bucket)
		if !isBucket {
			continue
		}
		if chainLength(sub) > threshold && depth+1 < Size-1 {
			deeper := t.reindexChain(sub, depth+1)
			newNode.slots[slot] = deeper
			t.stats.IndexSize += indexNodeSize
		}
	}

	return newNode
}

// Fetch returns the stored value and flags for key, if present.
func (t *Trie) Fetch(key []byte) (value []byte, flags byte, found bool) {
	d := Compute(key)
	node := t.root
	i := 0

	for i < Size {
		idx := d[i]
		switch v := node.slots[idx].(type) {
		case nil:
			return nil, 0, false
		case *indexNode:
			node = v
			i++
		case *bucket:
			b := findInChain(v, key)
			if b == nil {
				return nil, 0, false
			}
			return b.rec.value(), b.flags, true
		}
	}
	return nil, 0, false
}

// Remove deletes key, if present, and reports whether it was found.
func (t *Trie) Remove(key []byte) bool {
	d := Compute(key)
	node := t.root
	i := 0

	for i < Size {
		idx := d[i]
		switch v := node.slots[idx].(type) {
		case nil:
			return false
		case *indexNode:
			node = v
			i++
		case *bucket:
			b := findInChain(v, key)
			if b == nil {
				return false
			}
			setSlot(node, idx, unlink(v, b))
			t.stats.NumKeys--
			t.stats.MetaSize -= bucketHeaderSize
			t.stats.DataSize -= uint64(b.rec.size())
			return true
		}
	}
	return false
}

// frame records a parent index node and the slot descended from it, so
// traversal can resume at the next sibling slot once a chain or subtree
// is exhausted.
type frame struct {
	node    *indexNode
	slotIdx int
}

// FirstKey returns the key of the first entry in traversal order, if the
// trie is non-empty.
func (t *Trie) FirstKey() (key []byte, found bool) {
	return firstInSubtree(t.root)
}

// firstInSubtree finds the first non-empty slot in node, ascending, and
// returns the first key reachable from it.
func firstInSubtree(node *indexNode) (key []byte, found bool) {
	for s := 0; s < FanOut; s++ {
		switch v := node.slots[s].(type) {
		case nil:
			continue
		case *indexNode:
			if k, ok := firstInSubtree(v); ok {
				return k, true
			}
		case *bucket:
			return v.rec.key(), true
		}
	}
	return nil, false
}

// NextKey locates previousKey and returns the key of the entry that
// follows it in traversal order. It fails if previousKey is not present
// or is the last entry.
func (t *Trie) NextKey(previousKey []byte) (key []byte, found bool) {
	d := Compute(previousKey)
	node := t.root
	i := 0
	var stack []frame

	for i < Size {
		idx := int(d[i])
		switch v := node.slots[idx].(type) {
		case nil:
			return nil, false
		case *indexNode:
			stack = append(stack, frame{node: node, slotIdx: idx})
			node = v
			i++
		case *bucket:
			b := findInChain(v, previousKey)
			if b == nil {
				return nil, false
			}
			if b.next != nil {
				return b.next.rec.key(), true
			}
			return resumeAfter(node, idx, stack)
		}
	}
	return nil, false
}

// resumeAfter continues in-order traversal starting just after slotIdx in
// node, popping stack frames to climb back toward the root as each
// node's remaining slots are exhausted.
func resumeAfter(node *indexNode, slotIdx int, stack []frame) (key []byte, found bool) {
	for {
		for s := slotIdx + 1; s < FanOut; s++ {
			switch v := node.slots[s].(type) {
			case nil:
				continue
			case *indexNode:
				if k, ok := firstInSubtree(v); ok {
					return k, true
				}
			case *bucket:
				return v.rec.key(), true
			}
		}
		if len(stack) == 0 {
			return nil, false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node = top.node
		slotIdx = top.slotIdx
	}
}

// Clear discards all entries, resetting the trie to its initial state.
func (t *Trie) Clear() {
	t.root = newIndexNode()
	t.stats = Stats{IndexSize: indexNodeSize}
}

// ClearSlice discards every entry reachable from the root's top-level
// slot identified by slice (the most significant digest nibble). Slice
// values outside 0..FanOut-1 are a no-op.
func (t *Trie) ClearSlice(slice byte) {
	if slice >= FanOut {
		return
	}
	v := t.root.slots[slice]
	if v == nil {
		return
	}
	keys, idxBytes, metaBytes, dataBytes := sumSubtree(v)
	t.stats.NumKeys -= keys
	t.stats.IndexSize -= idxBytes
	t.stats.MetaSize -= metaBytes
	t.stats.DataSize -= dataBytes
	t.root.slots[slice] = nil
}

// sumSubtree totals the bookkeeping counters for everything reachable
// from v, for ClearSlice's stats adjustment.
func sumSubtree(v tag) (keys, idxBytes, metaBytes, dataBytes uint64) {
	switch n := v.(type) {
	case *indexNode:
		idxBytes += indexNodeSize
		for _, s := range n.slots {
			if s == nil {
				continue
			}
			k, ib, mb, db := sumSubtree(s)
			keys += k
			idxBytes += ib
			metaBytes += mb
			dataBytes += db
		}
	case *bucket:
		for b := n; b != nil; b = b.next {
			keys++
			metaBytes += bucketHeaderSize
			dataBytes += uint64(b.rec.size())
		}
	}
	return
}

// Stats returns a snapshot of the trie's bookkeeping counters.
func (t *Trie) Stats() Stats {
	return t.stats
}
