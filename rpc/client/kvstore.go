package client

import (
	"triekv/lib/kv"
	"triekv/rpc/common"
	"triekv/rpc/serializer"
	"triekv/rpc/transport"
)

// NewRPCStore creates a kv.KVStore client that forwards every operation
// to a remote server over transport, encoded with serializer.
func NewRPCStore(
	shardId uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (kv.KVStore, error) {
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	s := &rpcKVStore{
		rpcClientAdapter: rpcClientAdapter{
			shardId:    shardId,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}

	return s, nil
}

type rpcKVStore struct {
	rpcClientAdapter
}

var _ kv.KVStore = (*rpcKVStore)(nil)

// --------------------------------------------------------------------------
// Interface Methods (docu see lib/kv.KVStore)
// --------------------------------------------------------------------------

func (s *rpcKVStore) Store(key, value []byte, flags byte) kv.Response {
	req := common.NewStoreRequest(key, value, flags)
	resp, err := invokeRPCRequest(s.shardId, req, s.transport, s.serializer)
	if err != nil {
		Logger.Errorf("Store(%q) failed: %v", key, err)
		return kv.Response{Result: kv.ResultError}
	}
	if !resp.Ok {
		return kv.Response{Result: kv.ResultError}
	}
	if resp.Replaced {
		return kv.Response{Result: kv.ResultReplace}
	}
	return kv.Response{Result: kv.ResultAdd}
}

func (s *rpcKVStore) Fetch(key []byte) kv.Response {
	req := common.NewFetchRequest(key)
	resp, err := invokeRPCRequest(s.shardId, req, s.transport, s.serializer)
	if err != nil || !resp.Ok {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk, Flags: resp.Flags, Content: resp.Value}
}

func (s *rpcKVStore) Remove(key []byte) kv.Response {
	req := common.NewRemoveRequest(key)
	resp, err := invokeRPCRequest(s.shardId, req, s.transport, s.serializer)
	if err != nil || !resp.Ok {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk}
}

func (s *rpcKVStore) FirstKey() kv.Response {
	req := common.NewFirstKeyRequest()
	resp, err := invokeRPCRequest(s.shardId, req, s.transport, s.serializer)
	if err != nil || !resp.Ok {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk, Content: resp.Key}
}

func (s *rpcKVStore) NextKey(previousKey []byte) kv.Response {
	req := common.NewNextKeyRequest(previousKey)
	resp, err := invokeRPCRequest(s.shardId, req, s.transport, s.serializer)
	if err != nil || !resp.Ok {
		return kv.Response{Result: kv.ResultError}
	}
	return kv.Response{Result: kv.ResultOk, Content: resp.Key}
}

func (s *rpcKVStore) Clear() {
	s.sendFireAndForget(common.NewClearRequest())
}

func (s *rpcKVStore) ClearSlice(slice byte) {
	s.sendFireAndForget(common.NewClearSliceRequest(slice))
}

func (s *rpcKVStore) Stats() kv.Stats {
	req := common.NewStatsRequest()
	resp, err := invokeRPCRequest(s.shardId, req, s.transport, s.serializer)
	if err != nil {
		Logger.Errorf("Stats() failed: %v", err)
		return kv.Stats{}
	}
	return kv.Stats{
		NumKeys:   resp.NumKeys,
		IndexSize: resp.IndexSize,
		MetaSize:  resp.MetaSize,
		DataSize:  resp.DataSize,
	}
}

// SupportsFeature always reports full support: the server decides
// whether an operation actually succeeds, and an unsupported operation
// simply comes back as a ResultError.
func (s *rpcKVStore) SupportsFeature(feature kv.Feature) bool {
	return true
}

func (s *rpcKVStore) Close() error {
	return s.transport.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sendFireAndForget sends req and logs (without propagating) any
// transport or server-side error, for operations with no return value.
func (s *rpcKVStore) sendFireAndForget(req *common.Message) {
	reqBytes, err := s.serializer.Serialize(*req)
	if err != nil {
		Logger.Errorf("%s: failed to serialize request: %v", req.MsgType, err)
		return
	}

	respBytes, err := s.transport.Send(s.shardId, reqBytes)
	if err != nil {
		Logger.Errorf("%s: request failed: %v", req.MsgType, err)
		return
	}

	var resp common.Message
	if err := s.serializer.Deserialize(respBytes, &resp); err != nil {
		Logger.Errorf("%s: failed to deserialize response: %v", req.MsgType, err)
		return
	}

	if resp.MsgType == common.MsgTError || resp.Err != "" {
		Logger.Errorf("%s: server returned error: %s", req.MsgType, resp.Err)
	}
}
