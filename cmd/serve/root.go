package serve

import (
	"fmt"
	"strings"

	cmdUtil "triekv/cmd/util"
	"triekv/rpc/common"
	"triekv/rpc/serializer"
	"triekv/rpc/server"
	"triekv/rpc/transport"
	"triekv/rpc/transport/http"
	"triekv/rpc/transport/tcp"
	"triekv/rpc/transport/unix"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the triekv server",
		Long:    `Start the triekv server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is TRIEKV_<flag> (e.g. TRIEKV_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	key := "shards"
	ServeCmd.PersistentFlags().Uint64(key, 1, cmdUtil.WrapString("Number of independent trie shards to serve, numbered 0..shards-1"))

	key = "max-buckets"
	ServeCmd.PersistentFlags().Uint8(key, 16, cmdUtil.WrapString("Maximum bucket chain length before a reindex is triggered"))

	key = "reindex-scatter"
	ServeCmd.PersistentFlags().Uint8(key, 1, cmdUtil.WrapString("Widened acceptance threshold applied during a single reindex pass to absorb colliding keys"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Connection timeout in seconds"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the server will listen (e.g. 0.0.0.0:8080, /tmp/triekv.sock)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "metrics"
	ServeCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("Expose a Prometheus-style /metrics endpoint (http transport only)"))

	key = "metrics-path"
	ServeCmd.PersistentFlags().String(key, "/metrics", cmdUtil.WrapString("Path at which the metrics endpoint is served"))
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts it to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	serveCmdConfig.ShardCount = viper.GetUint64("shards")
	serveCmdConfig.MaxBuckets = byte(viper.GetUint("max-buckets"))
	serveCmdConfig.ReindexScatter = byte(viper.GetUint("reindex-scatter"))
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.MetricsEnabled = viper.GetBool("metrics")
	serveCmdConfig.MetricsPath = viper.GetString("metrics-path")
	serveCmdConfig.Serializer = viper.GetString("serializer")
	serveCmdConfig.Transport = viper.GetString("transport")

	return nil
}

// run starts the triekv server
func run(_ *cobra.Command, _ []string) error {
	var s serializer.IRPCSerializer
	switch viper.GetString("serializer") {
	case "json":
		s = serializer.NewJSONSerializer()
	case "gob":
		s = serializer.NewGOBSerializer()
	case "binary":
		s = serializer.NewBinarySerializer()
	default:
		return fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}

	var t transport.IRPCServerTransport
	switch viper.GetString("transport") {
	case "http":
		t = http.NewHttpServerTransport()
	case "tcp":
		t = tcp.NewTCPServerTransport()
	case "unix":
		t = unix.NewUnixServerTransport()
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
		s,
	)

	return serv.Serve()
}

// initConfig reads in serveCmdConfig file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("triekv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
