package mcp

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// maxTextLength bounds every text argument, in characters
	maxTextLength = 10000
	// maxTop bounds the number of ranked matches knn_match returns
	maxTop = 10
)

// validateToolName checks that name is one of the served tools
func validateToolName(name string) error {
	switch name {
	case toolMatch, toolLearn, toolAugment:
		return nil
	}
	return fmt.Errorf("unknown tool: %s", name)
}

// validateText extracts a required, non-blank string argument
func validateText(args map[string]interface{}, field string) (string, error) {
	raw, present := args[field]
	if !present {
		return "", fmt.Errorf("%s is required", field)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", field)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s must be non-empty", field)
	}
	if utf8.RuneCountInString(value) > maxTextLength {
		return "", fmt.Errorf("%s exceeds maximum length of %d characters", field, maxTextLength)
	}
	return value, nil
}

// validateTop checks the optional top argument. JSON numbers arrive as
// float64; fractional values are rejected.
func validateTop(raw interface{}) (int, error) {
	if raw == nil {
		return 1, nil
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("top must be an integer")
	}
	if f < 1 || f > maxTop {
		return 0, fmt.Errorf("top must be between 1 and %d", maxTop)
	}
	return int(f), nil
}

// validateNoUnknownParams checks for unknown parameters
func validateNoUnknownParams(args map[string]interface{}, allowed []string) error {
	allowedMap := make(map[string]bool)
	for _, key := range allowed {
		allowedMap[key] = true
	}

	var unknown []string
	for key := range args {
		if !allowedMap[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown parameter '%s'. Supported parameters: %s", unknown[0], strings.Join(allowed, ", "))
}
