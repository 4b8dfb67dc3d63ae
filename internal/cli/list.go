package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all interactions",
	Long: `List the interactions in the corpus in index order.

Examples:
  # List all interactions
  knnchat list

  # Include responses and tags
  knnchat list --verbose`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	corpus := index.GetAll()

	if len(corpus) == 0 {
		fmt.Println("No interactions found")
		return nil
	}

	fmt.Printf("Found %d interaction(s):\n\n", len(corpus))

	for i, in := range corpus {
		if verbose {
			fmt.Printf("[%d] %s\n", i, in.ID)
			fmt.Printf("  Input:    %s\n", in.Input)
			fmt.Printf("  Response: %s\n", in.Response)
			if len(in.Tags) > 0 {
				fmt.Printf("  Tags:     %s\n", strings.Join(in.Tags, ", "))
			}
			fmt.Println()
		} else {
			fmt.Printf("%-24s  %s\n", in.ID, in.Input)
		}
	}

	if index.Stale() {
		fmt.Println("\n(index has learned interactions since the last rebuild)")
	}
	return nil
}
