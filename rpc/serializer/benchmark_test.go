package serializer

import (
	"testing"

	"triekv/rpc/common"
)

// benchmarkMessages returns a set of messages for targeted benchmarking.
func benchmarkMessages() map[string]common.Message {
	return map[string]common.Message{
		"Empty": {
			MsgType: common.MsgTSuccess,
		},
		"SmallKeyOnly": {
			MsgType: common.MsgTKVFetch,
			Key:     []byte("k"),
		},
		"MediumKeyOnly": {
			MsgType: common.MsgTKVFetch,
			Key:     []byte("medium-length-key-for-testing"),
		},
		"LargeKeyOnly": {
			MsgType: common.MsgTKVFetch,
			Key:     []byte("this-is-a-very-large-key-that-could-be-used-for-storing-data-or-as-a-document-id-in-some-cases"),
		},
		"SmallValue": {
			MsgType: common.MsgTKVStore,
			Key:     []byte("key"),
			Value:   []byte("v"),
		},
		"MediumValue": {
			MsgType: common.MsgTKVStore,
			Key:     []byte("key"),
			Value:   []byte("medium length value for testing serialization"),
		},
		"LargeValue": {
			MsgType: common.MsgTKVStore,
			Key:     []byte("key"),
			Value:   make([]byte, 1024),
		},
		"VeryLargeValue": {
			MsgType: common.MsgTKVStore,
			Key:     []byte("key"),
			Value:   make([]byte, 1024*16),
		},
		"CompleteMessage": {
			MsgType:  common.MsgTKVStore,
			Key:      []byte("complete-test-key"),
			Value:    []byte("test-value-data"),
			Flags:    0xFF,
			Ok:       true,
			Replaced: true,
			Err:      "This is a test error message",
			Meta:     []byte("test-meta-data-for-benchmarking"),
		},
		"StatsMessage": {
			MsgType:   common.MsgTKVStats,
			Ok:        true,
			NumKeys:   1_000_000,
			IndexSize: 2_000_000,
			MetaSize:  3_000_000,
			DataSize:  4_000_000,
		},
		"ErrorMessage": {
			MsgType: common.MsgTError,
			Err:     "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
		},
	}
}

// BenchmarkSerialize benchmarks serialization for all implementations
// with various message types.
func BenchmarkSerialize(b *testing.B) {
	messages := benchmarkMessages()

	for name, factory := range testSerializers {
		for msgName, msg := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				serializer := factory()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := serializer.Serialize(msg); err != nil {
						b.Fatalf("Failed to serialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDeserialize benchmarks deserialization for all
// implementations with various message types.
func BenchmarkDeserialize(b *testing.B) {
	messages := benchmarkMessages()
	serializedData := make(map[string]map[string][]byte)

	for name, factory := range testSerializers {
		serializer := factory()
		serializedData[name] = make(map[string][]byte)

		for msgName, msg := range messages {
			data, err := serializer.Serialize(msg)
			if err != nil {
				b.Fatalf("Failed to serialize %s with %s: %v", msgName, name, err)
			}
			serializedData[name][msgName] = data
		}
	}

	for name, factory := range testSerializers {
		for msgName := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				serializer := factory()
				data := serializedData[name][msgName]
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					var msg common.Message
					if err := serializer.Deserialize(data, &msg); err != nil {
						b.Fatalf("Failed to deserialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkSize measures and reports the serialized size for each
// message type.
func BenchmarkSize(b *testing.B) {
	messages := benchmarkMessages()

	for name, factory := range testSerializers {
		serializer := factory()

		for msgName, msg := range messages {
			b.Run(name+"_"+msgName, func(b *testing.B) {
				data, err := serializer.Serialize(msg)
				if err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}

				b.ReportMetric(float64(len(data)), "bytes")

				for i := 0; i < b.N; i++ {
					_ = data
				}
			})
		}
	}
}
