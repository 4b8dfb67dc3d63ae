package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

var (
	learnInput    string
	learnResponse string
	learnTags     []string
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Teach a new interaction",
	Long: `Add an interaction to the corpus.

The interaction is written to the corpus (learned.yaml for a corpus
directory) and indexed incrementally.

Examples:
  knnchat learn --input "what is your name" --response "knnchat"
  knnchat learn --input "good night" --response "sleep well" --tag smalltalk`,
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().StringVar(&learnInput, "input", "", "Prompt text to recognize")
	learnCmd.Flags().StringVar(&learnResponse, "response", "", "Reply to give")
	learnCmd.Flags().StringSliceVar(&learnTags, "tag", nil, "Tags for the interaction")
	_ = learnCmd.MarkFlagRequired("input")
	_ = learnCmd.MarkFlagRequired("response")
}

// learnOutput is the serialized result of learn
type learnOutput struct {
	knowledge.Interaction
	Position int    `json:"position"`
	Path     string `json:"path"`
	Stale    bool   `json:"stale"`
}

func runLearn(cmd *cobra.Command, args []string) error {
	in, pos, err := learner.Learn(learnInput, learnResponse, learnTags...)
	if err != nil {
		return fmt.Errorf("failed to learn interaction: %w", err)
	}
	log.WithFields(logrus.Fields{"id": in.ID, "position": pos}).Info("Learned interaction")

	out := learnOutput{Interaction: in, Position: pos, Path: loader.WritePath(), Stale: index.Stale()}
	if getFormat() == knowledge.FormatText {
		fmt.Printf("Learned %s at position %d (%s)\n", in.ID, pos, out.Path)
		return nil
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
