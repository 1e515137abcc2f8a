package client

import (
	"fmt"

	"triekv/rpc/common"
	"triekv/rpc/serializer"
	"triekv/rpc/transport"
)

var Logger = common.GetLogger("rpc")

// rpcClientAdapter stores the data shared by every RPC client
// implementation. Used by rpcKVStore with composition.
type rpcClientAdapter struct {
	shardId    uint64
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest serializes req, sends it over transport, deserializes
// the response, and validates that it is not an error response and
// matches the expected message type.
func invokeRPCRequest(shardId uint64, req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	respBytes, err := transport.Send(shardId, reqBytes)
	if err != nil {
		return nil, err
	}

	resp := &common.Message{}
	err = serializer.Deserialize(respBytes, resp)
	if err != nil {
		return nil, fmt.Errorf("rpc client: %w", err)
	}

	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, fmt.Errorf("rpc client: %s", resp.Err)
	}

	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("rpc client: unexpected message type %s, expected %s", resp.MsgType, req.MsgType)
	}

	return resp, nil
}
