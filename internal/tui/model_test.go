package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark-chris/knnchat/internal/knowledge"
)

type fakeBot struct {
	answers  map[string]string
	learned  []knowledge.Interaction
	learnErr error
}

func (b *fakeBot) Reply(query string) knowledge.QueryResult {
	resp, ok := b.answers[query]
	if !ok {
		return knowledge.QueryResult{Query: query}
	}
	return knowledge.QueryResult{
		Query:    query,
		Matched:  true,
		Response: resp,
		Matches:  []knowledge.MatchOutput{{Input: query, Response: resp, Score: 1}},
	}
}

func (b *fakeBot) Learn(input, response string) (knowledge.Interaction, error) {
	if b.learnErr != nil {
		return knowledge.Interaction{}, b.learnErr
	}
	in := knowledge.Interaction{ID: "ix-test", Input: input, Response: response}
	b.learned = append(b.learned, in)
	b.answers[input] = response
	return in, nil
}

func submit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func newModel(bot *fakeBot) Model {
	m := New(bot, "2 interactions loaded", false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestModel_Matched(t *testing.T) {
	m := newModel(&fakeBot{answers: map[string]string{"hello": "hi!"}})

	m, cmd := submit(t, m, "hello")
	assert.Nil(t, cmd)
	require.Len(t, m.transcript, 2)
	assert.Equal(t, "hi!", m.transcript[1].text)
	assert.Contains(t, m.status, "score 1.000")
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "hi!")
}

func TestModel_TeachUnmatched(t *testing.T) {
	bot := &fakeBot{answers: map[string]string{}}
	m := newModel(bot)

	m, _ = submit(t, m, "what is love")
	assert.Equal(t, Fallback, m.transcript[len(m.transcript)-1].text)
	assert.Equal(t, "what is love", m.lastUnmatched)

	m, _ = submit(t, m, "/learn baby don't hurt me")
	require.Len(t, bot.learned, 1)
	assert.Equal(t, "what is love", bot.learned[0].Input)
	assert.Equal(t, "baby don't hurt me", bot.learned[0].Response)
	assert.Empty(t, m.lastUnmatched)
	assert.Equal(t, "Learned ix-test", m.status)

	m, _ = submit(t, m, "what is love")
	assert.Equal(t, "baby don't hurt me", m.transcript[len(m.transcript)-1].text)
}

func TestModel_LearnWithoutUnmatched(t *testing.T) {
	bot := &fakeBot{answers: map[string]string{}}
	m := newModel(bot)

	m, _ = submit(t, m, "/learn anything")
	assert.Empty(t, bot.learned)
	assert.Contains(t, m.status, "Nothing to learn")

	m, _ = submit(t, m, "unknown")
	m, _ = submit(t, m, "/learn")
	assert.Equal(t, "Usage: /learn <reply>", m.status)
}

func TestModel_LearnError(t *testing.T) {
	bot := &fakeBot{answers: map[string]string{}, learnErr: errors.New("disk full")}
	m := newModel(bot)

	m, _ = submit(t, m, "unknown")
	m, _ = submit(t, m, "/learn reply")
	assert.Equal(t, "Error: disk full", m.status)
	assert.Equal(t, "unknown", m.lastUnmatched)
}

func TestModel_Quit(t *testing.T) {
	m := newModel(&fakeBot{answers: map[string]string{}})

	_, cmd := submit(t, m, "/quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(&fakeBot{answers: map[string]string{}}, "", false)
	assert.Equal(t, "Loading...", m.View())
}
