// Package chatview is the interactive terminal view for talking through an
// entry with the assistant.
package chatview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mindlog/pkg/chat"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/glyph"
	"tableflip.dev/mindlog/pkg/tui/theme"
)

const defaultWidth = 80

// Sender delivers one follow-up message and returns the assistant's answer.
type Sender interface {
	SendChat(ctx context.Context, entryID, text string) (chat.Message, error)
}

// replyMsg carries the outcome of a send back into the update loop.
type replyMsg struct {
	reply chat.Message
	err   error
}

// Model renders the thread and an input line. Only one message may be in
// flight; enter is ignored until its answer arrives.
type Model struct {
	ctx    context.Context
	sender Sender
	entry  entry.Entry

	thread  []chat.Message
	input   textinput.Model
	spinner spinner.Model
	busy    bool
	err     error

	width int
	theme theme.Theme
}

// New builds the view for an entry and its stored thread.
func New(ctx context.Context, sender Sender, e entry.Entry, thread []chat.Message) Model {
	in := textinput.New()
	in.Placeholder = "Ask a follow-up question"
	in.CharLimit = 2000
	in.Prompt = "› "
	in.Focus()

	return Model{
		ctx:     ctx,
		sender:  sender,
		entry:   e,
		thread:  chat.Visible(thread),
		input:   in,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   defaultWidth,
		theme:   theme.Default(),
	}
}

// Busy reports whether a message is waiting for its answer.
func (m Model) Busy() bool { return m.busy }

// Thread returns the visible turns shown by the view.
func (m Model) Thread() []chat.Message { return m.thread }

// Err returns the last send failure, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case replyMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			// The stored thread was restored; drop the optimistic turn too.
			m.thread = m.thread[:len(m.thread)-1]
			return m, nil
		}
		m.err = nil
		m.thread = chat.Append(m.thread, msg.reply)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if m.busy || text == "" {
		return m, nil
	}
	m.busy = true
	m.err = nil
	m.thread = chat.Append(m.thread, chat.User(text))
	m.input.Reset()

	ctx, sender, id := m.ctx, m.sender, m.entry.ID
	send := func() tea.Msg {
		reply, err := sender.SendChat(ctx, id, text)
		return replyMsg{reply: reply, err: err}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

func (m Model) View() string {
	t := m.theme
	wrap := max(m.width-4, 20)

	var b strings.Builder
	header := t.Panel.Title.Render(glyph.Stars(m.entry.Importance)+"  "+m.entry.When()) + "\n" +
		t.Panel.Body.Render(wordwrap.String(m.entry.User, wrap))
	if m.entry.AI != "" {
		header += "\n" + t.Chat.Assistant.Render(wordwrap.String(glyph.Reply.String()+" "+m.entry.AI, wrap))
	}
	b.WriteString(t.Panel.Frame.Width(max(m.width-2, 20)).Render(header))
	b.WriteString("\n\n")

	for _, msg := range m.thread {
		b.WriteString(m.renderTurn(msg, wrap))
		b.WriteString("\n")
	}

	switch {
	case m.busy:
		b.WriteString(t.Chat.Pending.Render(m.spinner.View() + " thinking..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(t.Footer.Error.Render("could not send: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(t.Footer.Help.Render("enter send · esc quit"))
	return b.String()
}

func (m Model) renderTurn(msg chat.Message, wrap int) string {
	t := m.theme.Chat
	body := wordwrap.String(msg.Content, wrap-2)
	if msg.Role == chat.RoleUser {
		return t.UserName.Render("you") + "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(t.User.Render(body))
	}
	return t.AssistantName.Render("mindlog") + "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(t.Assistant.Render(body))
}

// Run opens the view until the user quits.
func Run(ctx context.Context, sender Sender, e entry.Entry, thread []chat.Message) error {
	_, err := tea.NewProgram(New(ctx, sender, e, thread), tea.WithContext(ctx)).Run()
	return err
}
