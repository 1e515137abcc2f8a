package store

import "fmt"

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message. It is what anything layered above a
// lib/kv.KVStore (a synchronized wrapper, an RPC client) reports when a
// plain kv.Response is no longer enough, because the caller expects a Go
// error.
type Error struct {
	Code RetCode
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("store error (%s): %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // Command executed successfully.
	RetCNotFound                             // Key not found, or iteration exhausted.
	RetCInternalError                        // Command failed due to an internal error.
	RetCUnsupportedOperation                 // Operation is not supported by the underlying store.
	RetCInvalidOperation                     // Invalid operation or arguments.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCNotFound:
		return "NotFound"
	case RetCInternalError:
		return "InternalError"
	case RetCUnsupportedOperation:
		return "UnsupportedOperation"
	case RetCInvalidOperation:
		return "InvalidOperation"
	default:
		return "Unknown"
	}
}
