package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

var getCmd = &cobra.Command{
	Use:   "get <interaction-id>",
	Short: "Get a specific interaction by ID",
	Long: `Retrieve an interaction and the terms its input normalizes to.

Examples:
  # Interaction details (JSON)
  knnchat get greet-hello

  # Human-readable, with normalized terms
  knnchat get greet-hello --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	id := args[0]

	in, ok := index.GetByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", knowledge.ErrNotFound, id)
	}

	output, err := knowledge.FormatInteractionDetail(in, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
