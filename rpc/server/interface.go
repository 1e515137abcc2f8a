package server

import (
	"triekv/lib/kv"
	"triekv/rpc/common"
)

// IRPCServerAdapter translates a decoded Message into a lib/kv.KVStore
// call and encodes the result back into a Message.
type IRPCServerAdapter interface {
	// Handle handles req against store and returns the response. If an
	// error occurs, it is set on the returned Message.
	Handle(req *common.Message, store kv.KVStore) (resp *common.Message)
}
