// Package common provides the wire protocol, configuration structures,
// and logging shared by the triekv RPC client and server.
//
// Key Components:
//
//   - Message: the single request/response structure used across every
//     transport, with factory functions for each operation.
//
//   - MessageType: the enumeration of supported KVStore operations plus
//     the control message types (success, error, custom).
//
//   - ServerConfig / ClientConfig: startup configuration for the server
//     and client binaries, populated by Cobra/Viper from flags,
//     environment variables, and an optional .env file.
//
//   - Logger: a small leveled, named logger used consistently across the
//     RPC layer.
package common
