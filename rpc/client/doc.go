// Package client implements an RPC client for a trie store server. It
// provides an implementation of lib/kv.KVStore that forwards every
// operation to a remote server via the configured transport and
// serializer.
//
// The package focuses on:
//   - Transparent RPC access to a remote lib/kv.KVStore
//   - Integration with the transport and serializer layers
//   - Error handling and conversion between RPC and domain errors
//
// Key Components:
//
//   - NewRPCStore: factory function that creates a client implementing
//     lib/kv.KVStore. This client forwards all operations to a remote
//     server via the configured transport layer.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Endpoints:              []string{"localhost:5000"},
//	  TimeoutSecond:          5,
//	  RetryCount:             3,
//	  ConnectionsPerEndpoint: 1,
//	}
//
//	serializer := serializer.NewBinarySerializer()
//	store, _ := client.NewRPCStore(0, config, tcp.NewTCPClientTransport(), serializer)
//
//	store.Store([]byte("mykey"), []byte("myvalue"), 0)
//	resp := store.Fetch([]byte("mykey"))
//
// Performance Considerations:
//
//   - For applications that frequently send large payloads, increasing
//     ConnectionsPerEndpoint can improve throughput by allowing parallel
//     requests.
//
//   - For small messages, a single connection per endpoint is often more
//     efficient due to reduced connection overhead.
//
//   - The choice of serializer significantly affects performance. The
//     binary serializer provides the best performance and smallest
//     payload size.
//
// Thread Safety:
//
//	rpcKVStore is safe for concurrent use: the underlying transport
//	correlates concurrent requests by request ID.
package client
