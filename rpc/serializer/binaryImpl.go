package serializer

import (
	"encoding/binary"
	"fmt"

	"triekv/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary
// format optimized for speed and efficiency.
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary
// format.
type binarySerializerImpl struct {
}

// Bit flags indicating which optional fields are present in the encoded
// message.
const (
	hasKey      byte = 1 << 0
	hasValue    byte = 1 << 1
	hasSlice    byte = 1 << 2
	hasOk       byte = 1 << 3
	hasReplaced byte = 1 << 4
	hasErr      byte = 1 << 5
	hasStats    byte = 1 << 6
	hasMeta     byte = 1 << 7
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	result := make([]byte, b.sizeBytes(msg))

	result[0] = byte(msg.MsgType)
	result[2] = msg.Flags

	var flags byte
	pos := 3

	if msg.Key != nil {
		flags |= hasKey
		pos = putBytes(result, pos, msg.Key)
	}

	if msg.Value != nil {
		flags |= hasValue
		pos = putBytes(result, pos, msg.Value)
	}

	if msg.Slice != 0 {
		flags |= hasSlice
		result[pos] = msg.Slice
		pos++
	}

	if msg.Ok {
		flags |= hasOk
	}

	if msg.Replaced {
		flags |= hasReplaced
	}

	if msg.Err != "" {
		flags |= hasErr
		pos = putBytes(result, pos, []byte(msg.Err))
	}

	if msg.NumKeys != 0 || msg.IndexSize != 0 || msg.MetaSize != 0 || msg.DataSize != 0 {
		flags |= hasStats
		binary.BigEndian.PutUint64(result[pos:pos+8], msg.NumKeys)
		pos += 8
		binary.BigEndian.PutUint64(result[pos:pos+8], msg.IndexSize)
		pos += 8
		binary.BigEndian.PutUint64(result[pos:pos+8], msg.MetaSize)
		pos += 8
		binary.BigEndian.PutUint64(result[pos:pos+8], msg.DataSize)
		pos += 8
	}

	if msg.Meta != nil {
		flags |= hasMeta
		pos = putBytes(result, pos, msg.Meta)
	}

	result[1] = flags

	return result[:pos], nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	if len(data) < 3 {
		return fmt.Errorf("data too short for message header")
	}

	msg.MsgType = common.MessageType(data[0])
	flags := data[1]
	msg.Flags = data[2]
	pos := 3

	*msg = common.Message{MsgType: msg.MsgType, Flags: msg.Flags}

	if flags&hasKey != 0 {
		key, newPos, err := getBytes(data, pos)
		if err != nil {
			return fmt.Errorf("key: %w", err)
		}
		msg.Key = key
		pos = newPos
	}

	if flags&hasValue != 0 {
		value, newPos, err := getBytes(data, pos)
		if err != nil {
			return fmt.Errorf("value: %w", err)
		}
		msg.Value = value
		pos = newPos
	}

	if flags&hasSlice != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for slice")
		}
		msg.Slice = data[pos]
		pos++
	}

	msg.Ok = flags&hasOk != 0
	msg.Replaced = flags&hasReplaced != 0

	if flags&hasErr != 0 {
		errBytes, newPos, err := getBytes(data, pos)
		if err != nil {
			return fmt.Errorf("err: %w", err)
		}
		msg.Err = string(errBytes)
		pos = newPos
	}

	if flags&hasStats != 0 {
		if pos+32 > len(data) {
			return fmt.Errorf("data too short for stats")
		}
		msg.NumKeys = binary.BigEndian.Uint64(data[pos : pos+8])
		pos += 8
		msg.IndexSize = binary.BigEndian.Uint64(data[pos : pos+8])
		pos += 8
		msg.MetaSize = binary.BigEndian.Uint64(data[pos : pos+8])
		pos += 8
		msg.DataSize = binary.BigEndian.Uint64(data[pos : pos+8])
		pos += 8
	}

	if flags&hasMeta != 0 {
		meta, newPos, err := getBytes(data, pos)
		if err != nil {
			return fmt.Errorf("meta: %w", err)
		}
		msg.Meta = meta
		pos = newPos
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper functions for length-prefixed byte fields
// --------------------------------------------------------------------------

// putBytes writes a 4-byte big-endian length followed by b's bytes,
// starting at pos, and returns the position just past the written data.
func putBytes(dst []byte, pos int, b []byte) int {
	binary.BigEndian.PutUint32(dst[pos:pos+4], uint32(len(b)))
	pos += 4
	copy(dst[pos:pos+len(b)], b)
	return pos + len(b)
}

// getBytes reads a 4-byte big-endian length followed by that many bytes,
// starting at pos, returning the slice and the position just past it.
func getBytes(data []byte, pos int) ([]byte, int, error) {
	if pos+4 > len(data) {
		return nil, 0, fmt.Errorf("data too short for length")
	}
	length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4
	if pos+length > len(data) {
		return nil, 0, fmt.Errorf("data too short for data")
	}
	out := make([]byte, length)
	copy(out, data[pos:pos+length])
	return out, pos + length, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates an upper bound on the size needed for
// serialization.
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	size := 3 // MsgType + flags + app-level Flags byte

	if msg.Key != nil {
		size += 4 + len(msg.Key)
	}
	if msg.Value != nil {
		size += 4 + len(msg.Value)
	}
	if msg.Slice != 0 {
		size += 1
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}
	if msg.NumKeys != 0 || msg.IndexSize != 0 || msg.MetaSize != 0 || msg.DataSize != 0 {
		size += 32
	}
	if msg.Meta != nil {
		size += 4 + len(msg.Meta)
	}

	return size
}
