// Package cmd implements the command-line interface for the triekv
// key-value store. It provides a hierarchical command structure with
// operations for running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value store operations (store, fetch, remove, etc.)
//   - serve: Commands for starting and configuring the triekv server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See triekv -help for a list of all commands.
package cmd
