package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and
// responses. Which fields are used depends on the type of message.
type Message struct {
	MsgType MessageType `json:"msg_type"`

	// General fields
	Key   []byte `json:"key,omitempty"`   // Used for: Store, Fetch, Remove, NextKey
	Value []byte `json:"value,omitempty"` // Used for: Store (request), Fetch (response)
	Flags byte   `json:"flags,omitempty"` // Used for: Store (request), Fetch (response)
	Slice byte   `json:"slice,omitempty"` // Used for: ClearSlice

	// Response only fields
	Ok       bool   `json:"ok,omitempty"`       // Whether the operation succeeded
	Replaced bool   `json:"replaced,omitempty"` // Store: whether an existing key was overwritten
	Err      string `json:"err,omitempty"`      // Empty if no error, otherwise the error message

	// Stats response fields
	NumKeys   uint64 `json:"numKeys,omitempty"`
	IndexSize uint64 `json:"indexSize,omitempty"`
	MetaSize  uint64 `json:"metaSize,omitempty"`
	DataSize  uint64 `json:"dataSize,omitempty"`

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Unused, can be used for additional adapters
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewStoreRequest creates a new Store request.
func NewStoreRequest(key, value []byte, flags byte) *Message {
	return &Message{MsgType: MsgTKVStore, Key: key, Value: value, Flags: flags}
}

// NewStoreResponse creates a new Store response.
func NewStoreResponse(replaced bool, err error) *Message {
	msg := &Message{MsgType: MsgTKVStore, Ok: err == nil, Replaced: replaced}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewFetchRequest creates a new Fetch request.
func NewFetchRequest(key []byte) *Message {
	return &Message{MsgType: MsgTKVFetch, Key: key}
}

// NewFetchResponse creates a new Fetch response.
func NewFetchResponse(value []byte, flags byte, ok bool, err error) *Message {
	msg := &Message{MsgType: MsgTKVFetch, Value: value, Flags: flags, Ok: ok}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewRemoveRequest creates a new Remove request.
func NewRemoveRequest(key []byte) *Message {
	return &Message{MsgType: MsgTKVRemove, Key: key}
}

// NewRemoveResponse creates a new Remove response.
func NewRemoveResponse(ok bool, err error) *Message {
	msg := &Message{MsgType: MsgTKVRemove, Ok: ok}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewFirstKeyRequest creates a new FirstKey request.
func NewFirstKeyRequest() *Message {
	return &Message{MsgType: MsgTKVFirstKey}
}

// NewFirstKeyResponse creates a new FirstKey response.
func NewFirstKeyResponse(key []byte, ok bool, err error) *Message {
	msg := &Message{MsgType: MsgTKVFirstKey, Key: key, Ok: ok}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewNextKeyRequest creates a new NextKey request.
func NewNextKeyRequest(previousKey []byte) *Message {
	return &Message{MsgType: MsgTKVNextKey, Key: previousKey}
}

// NewNextKeyResponse creates a new NextKey response.
func NewNextKeyResponse(key []byte, ok bool, err error) *Message {
	msg := &Message{MsgType: MsgTKVNextKey, Key: key, Ok: ok}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewClearRequest creates a new Clear request.
func NewClearRequest() *Message {
	return &Message{MsgType: MsgTKVClear}
}

// NewClearSliceRequest creates a new ClearSlice request.
func NewClearSliceRequest(slice byte) *Message {
	return &Message{MsgType: MsgTKVClearSlice, Slice: slice}
}

// NewClearResponse creates a new Clear/ClearSlice response.
func NewClearResponse(err error) *Message {
	msg := &Message{MsgType: MsgTSuccess, Ok: err == nil}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewStatsRequest creates a new Stats request.
func NewStatsRequest() *Message {
	return &Message{MsgType: MsgTKVStats}
}

// NewStatsResponse creates a new Stats response.
func NewStatsResponse(numKeys, indexSize, metaSize, dataSize uint64) *Message {
	return &Message{
		MsgType:   MsgTKVStats,
		Ok:        true,
		NumKeys:   numKeys,
		IndexSize: indexSize,
		MetaSize:  metaSize,
		DataSize:  dataSize,
	}
}

// NewCustomRequest creates a new Custom request.
func NewCustomRequest(meta []byte) *Message {
	return &Message{MsgType: MsgTCustom, Meta: meta}
}

// NewCustomResponse creates a new Custom response.
func NewCustomResponse(meta []byte, err error) *Message {
	msg := &Message{MsgType: MsgTCustom, Meta: meta}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response.
func NewErrorResponse(err string) *Message {
	return &Message{MsgType: MsgTError, Err: err}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTKVStore:
		return "store"
	case MsgTKVFetch:
		return "fetch"
	case MsgTKVRemove:
		return "remove"
	case MsgTKVFirstKey:
		return "firstKey"
	case MsgTKVNextKey:
		return "nextKey"
	case MsgTKVClear:
		return "clear"
	case MsgTKVClearSlice:
		return "clearSlice"
	case MsgTKVStats:
		return "stats"
	case MsgTCustom:
		return "custom"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface for MessageType,
// serializing it as a string.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for
// MessageType, parsing it back from a string.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "store":
		*t = MsgTKVStore
	case "fetch":
		*t = MsgTKVFetch
	case "remove":
		*t = MsgTKVRemove
	case "firstKey":
		*t = MsgTKVFirstKey
	case "nextKey":
		*t = MsgTKVNextKey
	case "clear":
		*t = MsgTKVClear
	case "clearSlice":
		*t = MsgTKVClearSlice
	case "stats":
		*t = MsgTKVStats
	case "custom":
		*t = MsgTCustom
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess
	MsgTError

	// KVStore operations

	MsgTKVStore
	MsgTKVFetch
	MsgTKVRemove
	MsgTKVFirstKey
	MsgTKVNextKey
	MsgTKVClear
	MsgTKVClearSlice
	MsgTKVStats

	// Custom operations

	MsgTCustom
)
