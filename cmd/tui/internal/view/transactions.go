package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfreitas/tally/internal/ledger"
)

type transactionsState int

const (
	transactionsStateBrowse transactionsState = iota
	transactionsStateCreate
)

type TransactionsModel struct {
	CommonModel
	ledgerService *ledger.Service

	state   transactionsState
	table   table.Model
	txs     []*ledger.Transaction
	form    *huh.Form
	loading bool
	err     error
	status  string

	// Form bindings
	formAmount   string
	formType     string
	formCategory string
	formDesc     string
	formDate     string
}

func NewTransactionsModel(ledgerSvc *ledger.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransactionsModel{
		ledgerService: ledgerSvc,
		table:         t,
		loading:       true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }
func (m TransactionsModel) ShortHelp() string {
	if m.state == transactionsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | x: delete | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTransactionsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case transactionSavedMsg:
		if msg.err != nil {
			m.status = savedStatus(msg.err)
		} else {
			m.status = "Transaction created"
		}

		m.state = transactionsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case transactionDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Transaction deleted"
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case transactionsStateBrowse:
		return m.updateBrowse(msg)
	case transactionsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "x":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.txs) {
				return m, nil
			}

			return m, m.deleteCmd(m.txs[idx].ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	m.formType = string(ledger.TypeIncome)
	m.formCategory = ""
	m.formDesc = ""
	m.formDate = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("amount must be a number")
					}

					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Income", string(ledger.TypeIncome)),
					huh.NewOption("Expense", string(ledger.TypeExpense)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD, blank for today)").
				Value(&m.formDate),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = transactionsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = transactionsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(m.ShortHelp()),
	)

	if m.state == transactionsStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Transaction\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			tx.Category,
			FormatAmount(tx.Amount),
			tx.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadTransactionsMsg struct {
	txs []*ledger.Transaction
	err error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.ledgerService.ListTransactions(ctx)

		return loadTransactionsMsg{txs: txs, err: err}
	}
}

type transactionSavedMsg struct {
	err error
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))

	params := ledger.TransactionParams{
		Amount:      amount,
		Type:        ledger.Type(m.formType),
		Category:    strings.TrimSpace(m.formCategory),
		Description: strings.TrimSpace(m.formDesc),
	}

	if d, err := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate)); err == nil {
		params.Date = d
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.ledgerService.CreateTransaction(ctx, params)

		return transactionSavedMsg{err: err}
	}
}

type transactionDeletedMsg struct {
	err error
}

func (m TransactionsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return transactionDeletedMsg{err: m.ledgerService.DeleteTransaction(ctx, id)}
	}
}

// savedStatus renders a save error, listing validation messages when present.
func savedStatus(err error) string {
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		return "Invalid: " + strings.Join(verr.Messages, "; ")
	}

	return fmt.Sprintf("Error saving: %v", err)
}
