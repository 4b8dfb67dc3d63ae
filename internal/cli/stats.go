package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

var statsTerms int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long: `Show the number of indexed interactions, the size of the vocabulary,
whether learned interactions have made the index stale, and the most
common terms with their document frequency and IDF.

Examples:
  knnchat stats -f text
  knnchat stats --terms 0`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTerms, "terms", 20,
		"Number of most frequent terms to show (0 for none, -1 for all)")
}

func runStats(cmd *cobra.Command, args []string) error {
	out := knowledge.StatsOutput{IndexStats: index.Stats()}

	if statsTerms != 0 {
		terms := index.TermStats()
		if statsTerms > 0 && len(terms) > statsTerms {
			terms = terms[:statsTerms]
		}
		out.TopTerms = terms
	}

	output, err := knowledge.FormatStats(out, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
