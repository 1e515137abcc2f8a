// Package tcp implements TCP socket-based transport for the trie store's
// RPC system. It provides concrete implementations of the base package's
// connector interfaces over plain TCP connections.
//
// This package builds on the base package's transport functionality,
// inheriting its connection pooling, buffer reuse, and request routing.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// The server buffer size defaults to 512 KB.
package tcp
