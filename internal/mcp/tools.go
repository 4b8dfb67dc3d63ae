package mcp

import (
	"encoding/json"
	"fmt"
)

// Tool names
const (
	toolMatch   = "knn_match"
	toolLearn   = "knn_learn"
	toolAugment = "knn_augment"
)

// toolsCallParams represents the tools/call request parameters
type toolsCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

func stringProperty(description string, maxLength int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"minLength":   1,
		"maxLength":   maxLength,
	}
}

// ToolDefinitions returns the MCP tool definitions
func (s *Server) ToolDefinitions() []interface{} {
	return []interface{}{
		map[string]interface{}{
			"name":        toolMatch,
			"description": "Find the stored interaction whose input is most similar to the query and return its response. Similarity is TF-IDF cosine over normalized terms.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": stringProperty("Free text to match, e.g. 'how are you doing'", maxTextLength),
					"top": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     maxTop,
						"default":     1,
						"description": "Number of ranked matches to return",
					},
				},
				"required":             []string{"query"},
				"additionalProperties": false,
			},
		},
		map[string]interface{}{
			"name":        toolLearn,
			"description": "Teach a new interaction. It is matchable immediately; older document weights are refreshed on the next rebuild.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input":    stringProperty("Prompt text to recognize", maxTextLength),
					"response": stringProperty("Reply to give when the prompt matches", maxTextLength),
				},
				"required":             []string{"input", "response"},
				"additionalProperties": false,
			},
		},
		map[string]interface{}{
			"name":        toolAugment,
			"description": "List rewrites of a sentence with one word replaced by its synonym. Useful for authoring corpus variants.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sentence": stringProperty("Sentence to rewrite", maxTextLength),
				},
				"required":             []string{"sentence"},
				"additionalProperties": false,
			},
		},
	}
}

// handleToolsList handles the tools/list request
func handleToolsList(s *Server, params json.RawMessage) (interface{}, error) {
	if s.getState() != stateInitialized {
		return nil, invalidRequest("server not initialized")
	}

	return map[string]interface{}{
		"tools": s.ToolDefinitions(),
	}, nil
}

// handleToolsCall handles the tools/call request
func handleToolsCall(s *Server, params json.RawMessage) (interface{}, error) {
	if s.getState() != stateInitialized {
		return nil, invalidRequest("server not initialized")
	}

	var p toolsCallParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, invalidParams("invalid tools/call params: %v", err)
	}

	// Unknown tools are protocol errors; bad arguments are tool errors.
	if err := validateToolName(p.Name); err != nil {
		return nil, invalidParams("%v", err)
	}

	text, err := s.callTool(p.Name, p.Arguments)
	if err != nil {
		return createToolExecutionErrorResult(err.Error()), nil
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": text,
			},
		},
		"isError": false,
	}, nil
}

// callTool validates arguments and runs a known tool
func (s *Server) callTool(name string, args map[string]interface{}) (string, error) {
	switch name {
	case toolMatch:
		if err := validateNoUnknownParams(args, []string{"query", "top"}); err != nil {
			return "", err
		}
		query, err := validateText(args, "query")
		if err != nil {
			return "", err
		}
		top, err := validateTop(args["top"])
		if err != nil {
			return "", err
		}
		return s.match(query, top)

	case toolLearn:
		if err := validateNoUnknownParams(args, []string{"input", "response"}); err != nil {
			return "", err
		}
		input, err := validateText(args, "input")
		if err != nil {
			return "", err
		}
		response, err := validateText(args, "response")
		if err != nil {
			return "", err
		}
		return s.learn(input, response)

	case toolAugment:
		if err := validateNoUnknownParams(args, []string{"sentence"}); err != nil {
			return "", err
		}
		sentence, err := validateText(args, "sentence")
		if err != nil {
			return "", err
		}
		return s.augment(sentence)
	}
	return "", fmt.Errorf("unknown tool: %s", name)
}

// createToolExecutionErrorResult creates a tool execution error result
func createToolExecutionErrorResult(message string) interface{} {
	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": message,
			},
		},
		"isError": true,
	}
}
