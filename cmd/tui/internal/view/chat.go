package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfreitas/tally/internal/assistant"
	"github.com/mfreitas/tally/internal/ledger"
)

// chatTimeout is longer than dbTimeout: remote replies can be slow.
const chatTimeout = 30 * time.Second

type ChatModel struct {
	CommonModel
	assistantService *assistant.Service
	ledgerService    *ledger.Service

	input    textinput.Model
	messages []assistant.Message
	lastMode assistant.Mode
	waiting  bool
	err      error
}

func NewChatModel(assistantSvc *assistant.Service, ledgerSvc *ledger.Service) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about your business..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return ChatModel{
		assistantService: assistantSvc,
		ledgerService:    ledgerSvc,
		input:            ti,
	}
}

func (m ChatModel) Title() string     { return "Assistant Chat" }
func (m ChatModel) ShortHelp() string { return "Enter: send | Esc: back" }

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.messages = append(m.messages, assistant.Message{Role: "assistant", Content: msg.reply.Text})
		m.lastMode = msg.reply.Mode

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}

			m.messages = append(m.messages, assistant.Message{Role: "user", Content: text})
			m.input.Reset()
			m.waiting = true
			m.err = nil

			return m, m.sendCmd(m.messages)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ChatModel) View() string {
	userStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	var b strings.Builder

	for _, msg := range m.messages {
		if msg.Role == "user" {
			b.WriteString(userStyle.Render("You: ") + msg.Content + "\n\n")
		} else {
			b.WriteString(botStyle.Render("Assistant: ") + msg.Content + "\n\n")
		}
	}

	if m.waiting {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("Thinking...") + "\n\n")
	}

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
			Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	footer := m.ShortHelp()
	if m.lastMode != "" {
		footer = fmt.Sprintf("mode: %s | %s", m.lastMode, footer)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		m.input.View(),
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(footer),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type chatReplyMsg struct {
	reply assistant.Reply
	err   error
}

func (m ChatModel) sendCmd(messages []assistant.Message) tea.Cmd {
	history := make([]assistant.Message, len(messages))
	copy(history, messages)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		reply, err := m.assistantService.Reply(ctx, history, m.businessContext(ctx))

		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m ChatModel) businessContext(ctx context.Context) assistant.Context {
	ds, err := m.ledgerService.Dataset(ctx)
	if err != nil {
		return assistant.Context{}
	}

	return assistant.Context{
		Metrics:          &ds.Metrics,
		TransactionCount: len(ds.Transactions),
		CustomerCount:    len(ds.Customers),
		DebtCount:        len(ds.Debts),
	}
}
