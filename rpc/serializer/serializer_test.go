package serializer

import (
	"reflect"
	"testing"

	"triekv/rpc/common"
)

// testSerializers is a map of serializer name to factory function.
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testMessages creates a set of test messages with different fields
// filled.
func testMessages() []common.Message {
	return []common.Message{
		{MsgType: common.MsgTSuccess},

		{
			MsgType: common.MsgTKVStore,
			Key:     []byte("test-key"),
			Value:   []byte("test-value"),
			Flags:   0x01,
		},

		{
			MsgType: common.MsgTKVFetch,
			Key:     []byte("test-key"),
			Value:   []byte("test-value"),
			Flags:   0x02,
			Ok:      true,
		},

		{
			MsgType: common.MsgTError,
			Err:     "test error message",
		},

		{
			MsgType:   common.MsgTKVStats,
			Ok:        true,
			NumKeys:   42,
			IndexSize: 1024,
			MetaSize:  2048,
			DataSize:  4096,
		},

		{
			MsgType:  common.MsgTKVStore,
			Key:      []byte("test-key"),
			Value:    []byte("test-value"),
			Ok:       true,
			Replaced: true,
			Err:      "",
			Meta:     []byte("test-meta-data"),
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and
// deserialized correctly.
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestMessageTypes tests each message type with each serializer.
func TestMessageTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for msgType := common.MsgTSuccess; msgType <= common.MsgTCustom; msgType++ {
				msg := common.Message{MsgType: msgType}

				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message type %s: %v", msgType.String(), err)
					continue
				}

				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message type %s: %v", msgType.String(), err)
					continue
				}

				if result.MsgType != msgType {
					t.Errorf("Message type doesn't match after round trip: Expected %s, got %s",
						msgType.String(), result.MsgType.String())
				}
			}
		})
	}
}

// TestBinarySerializerSpecific tests edge cases for the binary
// serializer's length-prefixed fields.
func TestBinarySerializerSpecific(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name string
		msg  common.Message
	}{
		{name: "Empty message", msg: common.Message{}},
		{
			name: "Message with zero values",
			msg: common.Message{
				MsgType: common.MsgTKVStore,
				Key:     nil,
				Value:   []byte{},
				Ok:      false,
				Err:     "",
				Meta:    []byte{},
			},
		},
		{
			name: "Message with nil key but Ok=true",
			msg:  common.Message{MsgType: common.MsgTKVFetch, Ok: true, Value: nil},
		},
		{
			name: "Message with empty value slice but not nil",
			msg:  common.Message{MsgType: common.MsgTKVStore, Key: []byte("test"), Value: []byte{}},
		},
		{
			name: "Message with empty meta slice but not nil",
			msg:  common.Message{MsgType: common.MsgTCustom, Meta: []byte{}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := serializer.Serialize(tc.msg)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			var result common.Message
			if err := serializer.Deserialize(data, &result); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			if result.MsgType != tc.msg.MsgType {
				t.Errorf("MsgType mismatch: expected %v, got %v", tc.msg.MsgType, result.MsgType)
			}
			if result.Ok != tc.msg.Ok {
				t.Errorf("Ok mismatch: expected %v, got %v", tc.msg.Ok, result.Ok)
			}
			if result.Err != tc.msg.Err {
				t.Errorf("Err mismatch: expected %q, got %q", tc.msg.Err, result.Err)
			}

			if (tc.msg.Value == nil) != (result.Value == nil) {
				t.Errorf("Value nil/non-nil mismatch: expected %v, got %v", tc.msg.Value, result.Value)
			}
			if (tc.msg.Meta == nil) != (result.Meta == nil) {
				t.Errorf("Meta nil/non-nil mismatch: expected %v, got %v", tc.msg.Meta, result.Meta)
			}
		})
	}
}

// TestInvalidBinaryData tests how the binary serializer handles corrupt
// or truncated data.
func TestInvalidBinaryData(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name        string
		data        []byte
		expectError bool
	}{
		{name: "Empty data", data: []byte{}, expectError: true},
		{name: "Too short header", data: []byte{1, 0}, expectError: true},
		{name: "Valid header only", data: []byte{1, 0, 0}, expectError: false},
		{
			name:        "Invalid length for key",
			data:        []byte{1, byte(hasKey), 0, 0, 0, 0, 5, 'a', 'b', 'c'},
			expectError: true,
		},
		{
			name:        "Invalid length for value",
			data:        []byte{1, byte(hasValue), 0, 0, 0, 0, 10},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var msg common.Message
			err := serializer.Deserialize(tc.data, &msg)

			if tc.expectError && err == nil {
				t.Errorf("Expected error but got none")
			} else if !tc.expectError && err != nil {
				t.Errorf("Did not expect error but got: %v", err)
			}
		})
	}
}
