package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

var (
	queryTop      int
	queryMinScore float64
)

var queryCmd = &cobra.Command{
	Use:   "query <text...>",
	Short: "Find the closest interaction and print its response",
	Long: `Match free text against the corpus and return the best interaction.

Punctuation is split off before matching. A result only counts as a match
when it shares at least one weighted term with the query and scores at or
above --min-score.

Examples:
  # Best match (JSON)
  knnchat query "hello there!"

  # Just the reply
  knnchat query -f text "hello there!"

  # Ranked list with scores
  knnchat query --top 5 --verbose "music"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&queryTop, "top", 0,
		"Number of ranked matches to return (default: config match.top)")
	queryCmd.Flags().Float64Var(&queryMinScore, "min-score", -1,
		"Minimum cosine similarity for a match (default: config match.min_score)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	opts := knowledge.QueryOptions{
		Query:      strings.Join(args, " "),
		Top:        queryTop,
		MinScore:   queryMinScore,
		TokenLimit: cfg.Match.TokenLimit,
	}
	if opts.Top <= 0 {
		opts.Top = cfg.Match.Top
	}
	if opts.MinScore < 0 {
		opts.MinScore = cfg.Match.MinScore
	}

	result := knowledge.Query(index, opts)
	log.WithField("matched", result.Matched).Debugf("Query %q", opts.Query)

	output, err := knowledge.FormatOutput(result, getFormat(), verbose)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
