package knowledge

import (
	"fmt"
	"strings"

	"github.com/mark-chris/knnchat/internal/lexicon"
)

// DefaultResponseTokenLimit is the response size above which validation warns
const DefaultResponseTokenLimit = 200

// ValidationError represents a single validation error
type ValidationError struct {
	InteractionID string
	Field         string
	Message       string
	Severity      string // "error" or "warning"
}

func (e ValidationError) String() string {
	return fmt.Sprintf("[%s] %s: %s - %s", e.Severity, e.InteractionID, e.Field, e.Message)
}

// ValidationResult holds all validation errors for an interaction
type ValidationResult struct {
	InteractionID string
	Position      int
	IsValid       bool
	Errors        []ValidationError
	Warnings      []ValidationError
}

// Validate checks a single interaction. tokenLimit <= 0 uses
// DefaultResponseTokenLimit.
func Validate(in Interaction, tokenLimit int) ValidationResult {
	if tokenLimit <= 0 {
		tokenLimit = DefaultResponseTokenLimit
	}

	result := ValidationResult{
		InteractionID: in.ID,
		IsValid:       true,
		Errors:        make([]ValidationError, 0),
		Warnings:      make([]ValidationError, 0),
	}

	result.checkRequired(in.ID, "input", in.Input)
	result.checkRequired(in.ID, "response", in.Response)

	// An input made only of stop words has a zero vector and never matches.
	if strings.TrimSpace(in.Input) != "" && len(lexicon.TokenizeAndStem(in.Input)) == 0 {
		result.addWarning(in.ID, "input", "no terms survive normalization; this interaction can never match")
	}

	if in.Response != "" {
		counter, _ := NewTokenCounter()
		if n := counter.CountTokens(in.Response); n > tokenLimit {
			result.addWarning(in.ID, "response",
				fmt.Sprintf("approx %d tokens, exceeds limit of %d", n, tokenLimit))
		}
	}

	return result
}

func (r *ValidationResult) checkRequired(id, field, value string) {
	if strings.TrimSpace(value) == "" {
		r.addError(id, field, "required field is empty")
	}
}

func (r *ValidationResult) addError(id, field, message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{
		InteractionID: id,
		Field:         field,
		Message:       message,
		Severity:      "error",
	})
}

func (r *ValidationResult) addWarning(id, field, message string) {
	r.Warnings = append(r.Warnings, ValidationError{
		InteractionID: id,
		Field:         field,
		Message:       message,
		Severity:      "warning",
	})
}

// ValidateAll validates a corpus. Besides per-interaction checks it reports
// duplicate ids as errors and duplicate inputs as warnings: both documents
// are indexed, but the later one can only win a tie it never gets.
func ValidateAll(corpus []Interaction, tokenLimit int) []ValidationResult {
	results := make([]ValidationResult, 0, len(corpus))
	idSeen := make(map[string]int)
	inputSeen := make(map[string]int)

	for i, in := range corpus {
		r := Validate(in, tokenLimit)
		r.Position = i

		if in.ID != "" {
			if first, dup := idSeen[in.ID]; dup {
				r.addError(in.ID, "id", fmt.Sprintf("duplicate of interaction at position %d", first))
			} else {
				idSeen[in.ID] = i
			}
		}

		key := strings.ToLower(strings.TrimSpace(in.Input))
		if key != "" {
			if first, dup := inputSeen[key]; dup {
				r.addWarning(in.ID, "input", fmt.Sprintf("same input as interaction at position %d", first))
			} else {
				inputSeen[key] = i
			}
		}

		results = append(results, r)
	}
	return results
}
