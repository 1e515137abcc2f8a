// Package server implements the RPC server for a trie key-value store.
// It provides an adapter for handling RPC requests against lib/kv.KVStore,
// along with the core server implementation that manages shards and
// request routing.
//
// The package focuses on:
//   - Server-side RPC request handling for KVStore operations
//   - Adapter pattern to decouple application logic from RPC mechanics
//   - Multiple independent trie shards served by a single process
//   - Optional Prometheus-style metrics per shard
//
// Key Components:
//
//   - IRPCServerAdapter: interface defining the contract for server
//     adapters, with the Handle method that processes incoming requests
//     against a lib/kv.KVStore.
//
//   - NewKVStoreServerAdapter: factory function creating an adapter that
//     translates RPC requests into lib/kv.KVStore method calls.
//
//   - NewRPCServer: factory function creating a configured server with
//     the specified transport and serializer mechanisms.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  ShardCount: 4,
//	  Endpoint: "0.0.0.0:8080",
//	  TimeoutSecond: 5,
//	  LogLevel: "info",
//	}
//
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPServerTransport(),
//	  serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Each shard is an independent trie.Engine wrapped in localstore for
// concurrency safety; a client selects a shard by shard ID on every
// request.
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent
//	requests across multiple connections. Each request is processed
//	independently. The Serve method is not thread-safe and should be
//	called only once.
package server
