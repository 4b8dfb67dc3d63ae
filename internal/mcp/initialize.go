package mcp

import (
	"encoding/json"
)

// ProtocolVersion is the MCP revision this server speaks
const ProtocolVersion = "2025-11-25"

// Version is reported in serverInfo; the CLI overrides it at startup.
var Version = "dev"

// initializeParams represents the initialize request parameters
type initializeParams struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ClientInfo      map[string]interface{} `json:"clientInfo,omitempty"`
}

// handleInitialize handles the initialize request
func handleInitialize(s *Server, params json.RawMessage) (interface{}, error) {
	if s.getState() != stateNotInitialized {
		return nil, invalidRequest("already initialized")
	}

	var p initializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, invalidParams("invalid initialize params: %v", err)
		}
	}

	// Only one protocol revision is supported. A client asking for another
	// gets ours and may disconnect.
	protocolVersion := ProtocolVersion

	// Store protocol version and client capabilities
	s.mu.Lock()
	s.protocolVersion = protocolVersion
	s.clientCapabilities = p.Capabilities
	s.mu.Unlock()

	// Transition to initializing state
	s.setState(stateInitializing)

	// Build response
	result := map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{
				"listChanged": false,
			},
		},
		"serverInfo": map[string]interface{}{
			"name":        "knnchat",
			"version":     Version,
			"description": "Nearest-neighbour interaction matcher - find, teach and augment canned replies",
		},
	}

	return result, nil
}
