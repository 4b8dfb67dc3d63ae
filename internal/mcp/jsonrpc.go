package mcp

import (
	"encoding/json"
	"errors"
)

const jsonrpcVersion = "2.0"

// JSONRPCRequest is an incoming request or notification. Notifications
// carry no id.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

func (r *JSONRPCRequest) isNotification() bool {
	return r.ID == nil
}

type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result"`
	ID      interface{} `json:"id"`
}

type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type JSONRPCErrorResponse struct {
	JSONRPC string       `json:"jsonrpc"`
	Error   JSONRPCError `json:"error"`
	ID      interface{}  `json:"id"`
}

// JSONRPCNotification is the client-side shape of a notification
type JSONRPCNotification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// parseRequest decodes one message. Syntax errors report ParseError;
// well-formed JSON that is not a 2.0 request reports InvalidRequest.
func parseRequest(data []byte) (*JSONRPCRequest, error) {
	if !json.Valid(data) {
		return nil, &protocolError{code: ErrCodeParseError, data: "malformed JSON"}
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &protocolError{code: ErrCodeInvalidRequest, data: err.Error()}
	}
	if req.JSONRPC != jsonrpcVersion {
		return nil, &protocolError{code: ErrCodeInvalidRequest, data: "invalid or missing jsonrpc version"}
	}
	if req.Method == "" {
		return nil, &protocolError{code: ErrCodeInvalidRequest, data: "missing method"}
	}

	return &req, nil
}

func createResponse(result interface{}, id interface{}) JSONRPCResponse {
	return JSONRPCResponse{
		JSONRPC: jsonrpcVersion,
		Result:  result,
		ID:      id,
	}
}

// createErrorResponse renders err as an error response. Errors that are not
// protocol errors become InternalError with the error text as data.
func createErrorResponse(err error, id interface{}) JSONRPCErrorResponse {
	if err == nil {
		err = errors.New("unknown error")
	}
	perr := asProtocolError(err)

	msg := perr.message
	if msg == "" {
		msg = errorMessage(perr.code)
	}

	return JSONRPCErrorResponse{
		JSONRPC: jsonrpcVersion,
		Error: JSONRPCError{
			Code:    perr.code,
			Message: msg,
			Data:    perr.data,
		},
		ID: id,
	}
}
