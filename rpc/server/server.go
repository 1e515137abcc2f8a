package server

import (
	"fmt"
	"os/signal"
	"runtime"
	"syscall"

	"triekv/lib/kv"
	"triekv/lib/kv/engine/trie"
	"triekv/lib/store/localstore"
	"triekv/rpc/common"
	"triekv/rpc/serializer"
	"triekv/rpc/transport"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = common.GetLogger("rpc")

// NewRPCServer creates a new RPC server. It takes a config, transport and
// serializer as parameters.
//
// Usage:
//
//	s := server.NewRPCServer(
//		config,
//		tcp.NewTCPServerTransport(),
//		serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return &rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		adapter:    NewKVStoreServerAdapter(),
		shards:     xsync.NewMapOf[uint64, kv.KVStore](),
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	adapter    IRPCServerAdapter
	shards     *xsync.MapOf[uint64, kv.KVStore]
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(shardId uint64, req []byte) []byte {
		var msg common.Message
		var respMsg common.Message

		shard, ok := s.shards.Load(shardId)

		if !ok {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     "shard not found",
			}
		} else {
			err := s.serializer.Deserialize(req, &msg)

			if err != nil {
				respMsg = common.Message{
					MsgType: common.MsgTError,
					Err:     fmt.Sprintf("failed to deserialize request: %s", err),
				}
			} else {
				respMsg = *s.adapter.Handle(&msg, shard)
			}
		}

		val, err := s.serializer.Serialize(respMsg)
		if err != nil {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     fmt.Sprintf("failed to serialize response: %s", err),
			}
			val, _ = s.serializer.Serialize(respMsg)
		}
		return val
	})
}

// init creates one trie shard per config.ShardCount, each wrapped with
// localstore for concurrency safety, and, when metrics are enabled,
// registers one gauge per Stats field for each shard.
func (s *rpcServer) init() error {
	common.InitLoggers(s.config)

	shardCount := s.config.ShardCount
	if shardCount == 0 {
		shardCount = 1
	}

	opts := trie.Options{
		MaxBuckets:     s.config.MaxBuckets,
		ReindexScatter: s.config.ReindexScatter,
	}

	for shardId := uint64(0); shardId < shardCount; shardId++ {
		shard := localstore.New(func() kv.KVStore { return trie.New(opts) })
		s.shards.Store(shardId, shard)
		s.registerShardMetrics(shardId, shard)
		Logger.Infof("created trie shard %d", shardId)
	}

	s.registerTransportHandler()

	Logger.Infof("triekv server setup completed successfully")

	return nil
}

// registerShardMetrics exposes one gauge per Stats field per shard, read
// lazily whenever the /metrics endpoint is scraped.
func (s *rpcServer) registerShardMetrics(shardId uint64, shard kv.KVStore) {
	if !s.config.MetricsEnabled {
		return
	}

	labels := fmt.Sprintf(`{shard="%d"}`, shardId)
	metrics.NewGauge(`triekv_num_keys`+labels, func() float64 { return float64(shard.Stats().NumKeys) })
	metrics.NewGauge(`triekv_index_size_bytes`+labels, func() float64 { return float64(shard.Stats().IndexSize) })
	metrics.NewGauge(`triekv_meta_size_bytes`+labels, func() float64 { return float64(shard.Stats().MetaSize) })
	metrics.NewGauge(`triekv_data_size_bytes`+labels, func() float64 { return float64(shard.Stats().DataSize) })
}

// Serve starts the RPC server. This initializes the server plus the
// shards and starts the transport layer.
func (s *rpcServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}
