package internal

// bucketHeaderSize is the accounted overhead of one bucket header, used for
// MetaSize bookkeeping. It does not include the packed record, which is
// accounted separately as DataSize.
const bucketHeaderSize = 24

// bucket is one stored entry: a flags byte, a packed key/value record, and
// a link to the next bucket in its collision chain. A chain is a singly
// linked list of buckets sharing a digest prefix.
type bucket struct {
	flags byte
	rec   record
	next  *bucket
}

// findInChain walks the chain starting at head looking for a bucket whose
// record key equals key. Returns nil if no such bucket exists.
func findInChain(head *bucket, key []byte) *bucket {
	for b := head; b != nil; b = b.next {
		if b.rec.keyEquals(key) {
			return b
		}
	}
	return nil
}

// prepend inserts a new bucket at the head of the chain. Insertion order
// within a chain is otherwise unspecified.
func prepend(head *bucket, b *bucket) *bucket {
	b.next = head
	return b
}

// unlink removes target from the chain starting at head, returning the new
// chain head. target must be reachable from head.
func unlink(head *bucket, target *bucket) *bucket {
	if head == target {
		return head.next
	}
	for b := head; b != nil; b = b.next {
		if b.next == target {
			b.next = target.next
			return head
		}
	}
	return head
}

// chainLength walks the chain starting at head and counts its buckets.
func chainLength(head *bucket) int {
	n := 0
	for b := head; b != nil; b = b.next {
		n++
	}
	return n
}
