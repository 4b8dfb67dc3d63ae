package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mark-chris/knnchat/internal/knowledge"
	"github.com/mark-chris/knnchat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat interactively with the corpus",
	Long: `Start an interactive chat. Each message is answered with the closest
interaction's response. When nothing matches, teach the reply with
/learn <reply>; it is saved to the corpus and used immediately.

Commands inside the chat:
  /learn <reply>   answer the last unmatched message
  /quit            leave (also Ctrl+C)`,
	RunE: runChat,
}

// chatBot answers chat messages from the shared index
type chatBot struct {
	index    *knowledge.Index
	learner  *knowledge.Learner
	minScore float64
}

func (b chatBot) Reply(query string) knowledge.QueryResult {
	return knowledge.Query(b.index, knowledge.QueryOptions{Query: query, MinScore: b.minScore})
}

func (b chatBot) Learn(input, response string) (knowledge.Interaction, error) {
	in, _, err := b.learner.Learn(input, response)
	return in, err
}

func runChat(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chat needs an interactive terminal; use query or serve instead")
	}

	// Log lines would tear the alternate screen.
	if !debug {
		log.Logger.SetOutput(io.Discard)
	}

	bot := chatBot{index: index, learner: learner, minScore: cfg.Match.MinScore}
	summary := fmt.Sprintf("%d interactions loaded from %s", index.Count(), loader.BasePath())

	m := tui.New(bot, summary, verbose)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	return nil
}
