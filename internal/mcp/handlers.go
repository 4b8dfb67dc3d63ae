package mcp

import "fmt"

// Handler exposes the server's tools to in-process callers
type Handler struct {
	server *Server
}

// NewHandler creates a new MCP handler
func NewHandler(server *Server) *Handler {
	return &Handler{server: server}
}

// HandleToolCall runs a tool and returns its text result
func (h *Handler) HandleToolCall(toolName string, args map[string]interface{}) (string, error) {
	if err := validateToolName(toolName); err != nil {
		return "", err
	}
	text, err := h.server.callTool(toolName, args)
	if err != nil {
		return "", fmt.Errorf("%s: %w", toolName, err)
	}
	return text, nil
}

// GetTools returns the list of available tools
func (h *Handler) GetTools() []interface{} {
	return h.server.ToolDefinitions()
}
