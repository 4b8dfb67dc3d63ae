package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/knowledge"
	"github.com/mark-chris/knnchat/internal/lexicon"
)

var (
	augmentID    string
	augmentWrite bool
)

var augmentCmd = &cobra.Command{
	Use:   "augment [sentence...]",
	Short: "Generate synonym rewrites of a sentence",
	Long: `Print one rewrite of the sentence per word that has a synonym.

With --id the sentence is the input of an existing interaction, and
--write adds every rewrite to the corpus with that interaction's response.

Examples:
  knnchat augment "I love music"
  knnchat augment --id ix-3f2a9c01d4b7e680 --write`,
	RunE: runAugment,
}

func init() {
	augmentCmd.Flags().StringVar(&augmentID, "id", "",
		"Rewrite the input of this interaction")
	augmentCmd.Flags().BoolVar(&augmentWrite, "write", false,
		"Learn each rewrite with the interaction's response (requires --id)")
}

func runAugment(cmd *cobra.Command, args []string) error {
	var source knowledge.Interaction
	sentence := strings.Join(args, " ")

	switch {
	case augmentID != "":
		in, ok := index.GetByID(augmentID)
		if !ok {
			return fmt.Errorf("interaction not found: %s", augmentID)
		}
		source = in
		sentence = in.Input
	case augmentWrite:
		return fmt.Errorf("--write requires --id")
	case strings.TrimSpace(sentence) == "":
		return fmt.Errorf("a sentence or --id is required")
	}

	rewrites := lexicon.AugmentWithSynonyms(sentence)

	if augmentWrite {
		for _, rewrite := range rewrites {
			in, _, err := learner.Learn(rewrite, source.Response, source.Tags...)
			if err != nil {
				return fmt.Errorf("failed to learn rewrite %q: %w", rewrite, err)
			}
			log.WithField("id", in.ID).Infof("Learned rewrite %q", rewrite)
		}
	}

	output, err := knowledge.FormatAugmentations(knowledge.AugmentResult{
		Sentence: sentence,
		Rewrites: rewrites,
	}, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
