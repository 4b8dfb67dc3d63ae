package mcp

import (
	"errors"
	"fmt"
)

// JSON-RPC error codes
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

var errorMessages = map[int]string{
	ErrCodeParseError:     "Parse error",
	ErrCodeInvalidRequest: "Invalid Request",
	ErrCodeMethodNotFound: "Method not found",
	ErrCodeInvalidParams:  "Invalid params",
	ErrCodeInternalError:  "Internal error",
}

// errorMessage returns the standard message for a JSON-RPC error code
func errorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Server error"
}

// protocolError is a method failure that maps onto a JSON-RPC error object.
// An empty message falls back to the standard text for the code.
type protocolError struct {
	code    int
	message string
	data    interface{}
}

func (e *protocolError) Error() string {
	if e.message == "" {
		return errorMessage(e.code)
	}
	return e.message
}

func invalidParams(format string, args ...interface{}) error {
	return &protocolError{code: ErrCodeInvalidParams, message: fmt.Sprintf(format, args...)}
}

func invalidRequest(message string) error {
	return &protocolError{code: ErrCodeInvalidRequest, message: message}
}

func methodNotFound(method string) error {
	return &protocolError{code: ErrCodeMethodNotFound, data: method}
}

// asProtocolError unwraps a protocolError or reports err as an internal error
func asProtocolError(err error) *protocolError {
	var perr *protocolError
	if errors.As(err, &perr) {
		return perr
	}
	return &protocolError{code: ErrCodeInternalError, data: err.Error()}
}
