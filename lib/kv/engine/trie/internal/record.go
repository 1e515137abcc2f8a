package internal

import "encoding/binary"

// Record layout field widths, per spec: a 16-bit key length followed by the
// key bytes, then a 32-bit content length followed by the content bytes,
// all in a single contiguous allocation.
const (
	keyLenSize = 2
	valLenSize = 4

	// MaxKeyLength is the largest key length representable by the
	// 16-bit key-length field.
	MaxKeyLength = 1<<16 - 1
	// MaxValueLength is the largest content length representable by the
	// 32-bit content-length field.
	MaxValueLength = 1<<32 - 1
)

// record is a single packed [keyLength|key|contentLength|content]
// allocation. It is the sole owner of its backing byte slice.
type record []byte

// newRecord packs key and value into one contiguous allocation. It returns
// false if key or value exceeds the length fields' capacity.
func newRecord(key, value []byte) (record, bool) {
	if len(key) > MaxKeyLength || len(value) > MaxValueLength {
		return nil, false
	}

	buf := make([]byte, keyLenSize+len(key)+valLenSize+len(value))

	binary.LittleEndian.PutUint16(buf, uint16(len(key)))
	copy(buf[keyLenSize:], key)

	valOff := keyLenSize + len(key)
	binary.LittleEndian.PutUint32(buf[valOff:], uint32(len(value)))
	copy(buf[valOff+valLenSize:], value)

	return buf, true
}

// size returns the number of bytes this record occupies, for dataSize
// accounting.
func (r record) size() int {
	return len(r)
}

// keyLength reads the key-length field.
func (r record) keyLength() int {
	return int(binary.LittleEndian.Uint16(r))
}

// key returns the (borrowed) key byte range.
func (r record) key() []byte {
	kl := r.keyLength()
	return r[keyLenSize : keyLenSize+kl]
}

// value returns the (borrowed) content byte range.
func (r record) value() []byte {
	kl := r.keyLength()
	valOff := keyLenSize + kl
	vl := binary.LittleEndian.Uint32(r[valOff:])
	start := valOff + valLenSize
	return r[start : start+int(vl)]
}

// keyEquals reports whether this record's key is byte-equal to key.
func (r record) keyEquals(key []byte) bool {
	rk := r.key()
	if len(rk) != len(key) {
		return false
	}
	for i := range rk {
		if rk[i] != key[i] {
			return false
		}
	}
	return true
}
