package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

var (
	validateAll bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [interaction-id]",
	Short: "Validate the corpus",
	Long: `Check interactions for empty fields, duplicate ids, duplicate inputs,
inputs made only of stop words, and oversized responses.

Examples:
  # Validate the whole corpus
  knnchat validate --all

  # Validate one interaction
  knnchat validate greet-hello`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false,
		"Validate every interaction in the corpus")
}

func runValidate(cmd *cobra.Command, args []string) error {
	corpus := index.GetAll()

	if len(corpus) == 0 {
		fmt.Println("No interactions found to validate")
		return nil
	}

	results := knowledge.ValidateAll(corpus, cfg.Validate.ResponseTokenLimit)

	// Filter to a specific interaction if provided
	if len(args) > 0 && !validateAll {
		id := args[0]
		var selected []knowledge.ValidationResult
		for _, r := range results {
			if r.InteractionID == id {
				selected = append(selected, r)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("%w: %s", knowledge.ErrNotFound, id)
		}
		results = selected
	}

	hasErrors := false
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		totalErrors += len(result.Errors)
		totalWarnings += len(result.Warnings)

		if !result.IsValid {
			hasErrors = true
		}

		if len(result.Errors) > 0 || len(result.Warnings) > 0 || verbose {
			status := "✓"
			if !result.IsValid {
				status = "✗"
			}
			fmt.Printf("%s [%d] %s\n", status, result.Position, result.InteractionID)

			for _, err := range result.Errors {
				fmt.Printf("  ERROR: %s - %s\n", err.Field, err.Message)
			}
			for _, warn := range result.Warnings {
				fmt.Printf("  WARN:  %s - %s\n", warn.Field, warn.Message)
			}
			if len(result.Errors) > 0 || len(result.Warnings) > 0 {
				fmt.Println()
			}
		}
	}

	fmt.Printf("\nValidated %d interaction(s): %d error(s), %d warning(s)\n",
		len(results), totalErrors, totalWarnings)

	if hasErrors {
		return fmt.Errorf("validation failed with %d error(s)", totalErrors)
	}

	return nil
}
