package view

import (
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

type debtsState int

const (
	debtsStateBrowse debtsState = iota
	debtsStateCreate
	debtsStatePay
)

type DebtsModel struct {
	CommonModel
	ledgerService *ledger.Service

	state   debtsState
	table   table.Model
	debts   []*ledger.Debt
	form    *huh.Form
	loading bool
	err     error
	status  string

	// Form bindings
	formCustomer string
	formAmount   string
	formDueDate  string
	formDesc     string
	formPay      string
}

func NewDebtsModel(ledgerSvc *ledger.Service) DebtsModel {
	columns := []table.Column{
		{Title: "Customer", Width: 20},
		{Title: "Amount", Width: 12},
		{Title: "Paid", Width: 12},
		{Title: "Status", Width: 8},
		{Title: "Due", Width: 12},
		{Title: "Description", Width: 30},
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

	return DebtsModel{
		ledgerService: ledgerSvc,
		table:         t,
		loading:       true,
	}
}

func (m DebtsModel) Title() string { return "Debts" }
func (m DebtsModel) ShortHelp() string {
	if m.state != debtsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | p: record payment | x: delete | r: refresh"
}

func (m DebtsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DebtsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDebtsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.debts = msg.debts
		m.refreshTable()

		return m, nil

	case debtSavedMsg:
		if msg.err != nil {
			m.status = savedStatus(msg.err)
		} else {
			m.status = msg.status
		}

		m.state = debtsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case debtDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Debt deleted"
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == debtsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m DebtsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "p":
			return m.enterPayMode()
		case "x":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.debts) {
				return m, nil
			}

			return m, m.deleteCmd(m.debts[idx].ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DebtsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formCustomer = ""
	m.formAmount = ""
	m.formDueDate = ""
	m.formDesc = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customer").
				Title("Customer name").
				Value(&m.formCustomer).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("customer name cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount owed").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("amount must be a number")
					}

					return nil
				}),

			huh.NewInput().
				Key("due_date").
				Title("Due date (YYYY-MM-DD)").
				Value(&m.formDueDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("due date must be YYYY-MM-DD")
					}

					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = debtsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m DebtsModel) enterPayMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.debts) {
		return m, nil
	}

	m.formPay = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Payment amount").
				Value(&m.formPay).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("amount must be a number")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = debtsStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m DebtsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = debtsStateBrowse
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

	if m.state == debtsStatePay {
		return m, m.payCmd()
	}

	return m, m.saveCmd()
}

func (m DebtsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading debts...")
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

	if m.state != debtsStateBrowse && m.form != nil {
		title := "New Debt"
		if m.state == debtsStatePay {
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.debts) {
				d := m.debts[idx]
				title = fmt.Sprintf("Record Payment\n\n%s owes %s (paid %s)",
					d.CustomerName, FormatAmount(d.Amount), FormatAmount(d.PaidAmount))
			}
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DebtsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.debts))
	for _, d := range m.debts {
		rows = append(rows, table.Row{
			d.CustomerName,
			FormatAmount(d.Amount),
			FormatAmount(d.PaidAmount),
			string(d.Status),
			FormatDate(d.DueDate),
			d.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadDebtsMsg struct {
	debts []*ledger.Debt
	err   error
}

func (m DebtsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ds, err := m.ledgerService.ListDebts(ctx)

		return loadDebtsMsg{debts: ds, err: err}
	}
}

type debtSavedMsg struct {
	status string
	err    error
}

func (m DebtsModel) saveCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	dueDate, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formDueDate))

	params := ledger.DebtParams{
		CustomerName: strings.TrimSpace(m.formCustomer),
		Amount:       amount,
		DueDate:      dueDate,
		Description:  strings.TrimSpace(m.formDesc),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.ledgerService.CreateDebt(ctx, params)

		return debtSavedMsg{status: "Debt created", err: err}
	}
}

func (m DebtsModel) payCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.debts) {
		return nil
	}

	id := m.debts[idx].ID
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formPay))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		debt, err := m.ledgerService.PayDebt(ctx, id, amount)
		if err != nil {
			return debtSavedMsg{err: err}
		}

		return debtSavedMsg{status: fmt.Sprintf("Payment recorded, debt is now %s", debt.Status)}
	}
}

type debtDeletedMsg struct {
	err error
}

func (m DebtsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return debtDeletedMsg{err: m.ledgerService.DeleteDebt(ctx, id)}
	}
}
