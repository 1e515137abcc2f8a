package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// RPC server configuration
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for a triekv server
// process.
type ServerConfig struct {
	// Transport and endpoint
	Transport string // "tcp", "unix", or "http"
	Endpoint  string

	// Serializer selects the wire encoding: "json", "gob", or "binary".
	Serializer string

	// ShardCount is the number of independent trie shards this process
	// serves, numbered 0..ShardCount-1.
	ShardCount uint64

	// Engine tunables, forwarded to trie.Options.
	MaxBuckets     byte
	ReindexScatter byte

	// Connection handling
	TimeoutSecond int64

	// Metrics exposes a Prometheus-style /metrics endpoint (http
	// transport only).
	MetricsEnabled bool
	MetricsPath    string

	// Logging configuration
	LogLevel string
}

// String returns a formatted representation of the configuration.
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Serializer", c.Serializer)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Engine")
	addField("Shard Count", strconv.FormatUint(c.ShardCount, 10))
	addField("Max Buckets", strconv.Itoa(int(c.MaxBuckets)))
	addField("Reindex Scatter", strconv.Itoa(int(c.ReindexScatter)))

	addSection("Metrics")
	addField("Enabled", fmt.Sprintf("%t", c.MetricsEnabled))
	if c.MetricsEnabled {
		addField("Path", c.MetricsPath)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for a triekv client.
type ClientConfig struct {
	Endpoints              []string
	Transport              string
	Serializer             string
	TimeoutSecond          int
	RetryCount             int
	ConnectionsPerEndpoint int
}

// String returns a formatted representation of the client configuration.
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Transport", c.Transport)
	addField("Serializer", c.Serializer)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(max(1, c.ConnectionsPerEndpoint)))

	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
