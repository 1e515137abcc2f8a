package server

import (
	"fmt"

	"triekv/lib/kv"
	"triekv/lib/store"
	"triekv/rpc/common"
)

// NewKVStoreServerAdapter creates an adapter that dispatches RPC
// messages to a lib/kv.KVStore.
func NewKVStoreServerAdapter() IRPCServerAdapter {
	return &kvStoreServerAdapter{}
}

type kvStoreServerAdapter struct{}

func (a *kvStoreServerAdapter) Handle(req *common.Message, kvstore kv.KVStore) *common.Message {
	if kvstore == nil {
		return common.NewErrorResponse("handler: store is nil")
	}

	switch req.MsgType {
	case common.MsgTKVStore:
		resp := kvstore.Store(req.Key, req.Value, req.Flags)
		return common.NewStoreResponse(resp.Result == kv.ResultReplace, resultErr(resp, store.RetCInternalError))

	case common.MsgTKVFetch:
		resp := kvstore.Fetch(req.Key)
		return common.NewFetchResponse(resp.Content, resp.Flags, resp.Ok(), resultErr(resp, store.RetCNotFound))

	case common.MsgTKVRemove:
		resp := kvstore.Remove(req.Key)
		return common.NewRemoveResponse(resp.Ok(), resultErr(resp, store.RetCNotFound))

	case common.MsgTKVFirstKey:
		resp := kvstore.FirstKey()
		return common.NewFirstKeyResponse(resp.Content, resp.Ok(), resultErr(resp, store.RetCNotFound))

	case common.MsgTKVNextKey:
		resp := kvstore.NextKey(req.Key)
		return common.NewNextKeyResponse(resp.Content, resp.Ok(), resultErr(resp, store.RetCNotFound))

	case common.MsgTKVClear:
		kvstore.Clear()
		return common.NewClearResponse(nil)

	case common.MsgTKVClearSlice:
		kvstore.ClearSlice(req.Slice)
		return common.NewClearResponse(nil)

	case common.MsgTKVStats:
		stats := kvstore.Stats()
		return common.NewStatsResponse(stats.NumKeys, stats.IndexSize, stats.MetaSize, stats.DataSize)

	default:
		return common.NewErrorResponse(
			fmt.Sprintf("kvstore adapter: unsupported message type: %s", req.MsgType),
		)
	}
}

// resultErr converts a failed Response into a store.Error carrying
// notFoundCode, the RetCode that applies when this operation fails for
// this request (not-found for lookups, an internal/structural failure
// for store).
func resultErr(resp kv.Response, notFoundCode store.RetCode) error {
	if resp.Ok() {
		return nil
	}
	return store.NewError(notFoundCode, "operation failed")
}
