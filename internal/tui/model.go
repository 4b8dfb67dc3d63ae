// Package tui is the interactive chat loop: each line typed is matched
// against the corpus, and unanswered lines can be taught on the spot.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

// Fallback is shown when no interaction matches.
const Fallback = "I don't know how to answer that yet. Teach me with /learn <reply>."

// Chatbot is the TUI-facing subset of the matcher.
type Chatbot interface {
	Reply(query string) knowledge.QueryResult
	Learn(input, response string) (knowledge.Interaction, error)
}

type line struct {
	speaker string
	text    string
}

// Model is the Bubble Tea model for the chat loop.
type Model struct {
	bot        Chatbot
	input      textinput.Model
	viewport   viewport.Model
	transcript []line
	status     string
	ready      bool
	verbose    bool

	// lastUnmatched is the most recent query that got the fallback reply
	lastUnmatched string
}

// New creates a chat model. summary is shown in the status line until the
// first message.
func New(bot Chatbot, summary string, verbose bool) Model {
	ti := textinput.New()
	ti.Prompt = "you> "
	ti.Placeholder = "Say something, /learn <reply>, or /quit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{bot: bot, input: ti, viewport: vp, status: summary, verbose: verbose}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input box, input line
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-th)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			cmd := m.handle(text)
			m.refresh()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handle processes one submitted line
func (m *Model) handle(text string) tea.Cmd {
	switch {
	case text == "/quit" || text == "/exit":
		return tea.Quit
	case text == "/learn" || strings.HasPrefix(text, "/learn "):
		m.learn(strings.TrimSpace(strings.TrimPrefix(text, "/learn")))
		return nil
	}

	m.transcript = append(m.transcript, line{speaker: "you", text: text})
	result := m.bot.Reply(text)
	if !result.Matched {
		m.lastUnmatched = text
		m.transcript = append(m.transcript, line{speaker: "bot", text: Fallback})
		m.status = "No match"
		return nil
	}

	m.lastUnmatched = ""
	m.transcript = append(m.transcript, line{speaker: "bot", text: result.Response})
	if len(result.Matches) > 0 {
		best := result.Matches[0]
		m.status = fmt.Sprintf("Matched %q (score %.3f)", best.Input, best.Score)
		if m.verbose {
			m.status += fmt.Sprintf(", position %d", best.Position)
		}
	}
	if result.Stale {
		m.status += " [stale index]"
	}
	return nil
}

func (m *Model) learn(reply string) {
	switch {
	case m.lastUnmatched == "":
		m.status = "Nothing to learn: /learn answers the last unmatched message"
		return
	case reply == "":
		m.status = "Usage: /learn <reply>"
		return
	}

	in, err := m.bot.Learn(m.lastUnmatched, reply)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.transcript = append(m.transcript, line{speaker: "bot", text: fmt.Sprintf("Learned: %q -> %q", in.Input, in.Response)})
	m.status = "Learned " + in.ID
	m.lastUnmatched = ""
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("knnchat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	var sb strings.Builder
	for i, l := range m.transcript {
		if i > 0 {
			sb.WriteString("\n")
		}
		style := botStyle
		if l.speaker == "you" {
			style = userStyle
		}
		sb.WriteString(style.Render(l.speaker+">") + " " + l.text)
	}
	return sb.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
