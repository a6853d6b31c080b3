package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mfreitas/tally/internal/ledger"
)

type customersState int

const (
	customersStateBrowse customersState = iota
	customersStateCreate
)

type CustomersModel struct {
	CommonModel
	ledgerService *ledger.Service

	state     customersState
	table     table.Model
	customers []*ledger.Customer
	form      *huh.Form
	loading   bool
	err       error
	status    string

	// Form bindings
	formName  string
	formPhone string
	formEmail string
}

func NewCustomersModel(ledgerSvc *ledger.Service) CustomersModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Phone", Width: 16},
		{Title: "Email", Width: 28},
		{Title: "Added", Width: 12},
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

	return CustomersModel{
		ledgerService: ledgerSvc,
		table:         t,
		loading:       true,
	}
}

func (m CustomersModel) Title() string { return "Customers" }
func (m CustomersModel) ShortHelp() string {
	if m.state == customersStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | x: delete | r: refresh"
}

func (m CustomersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.customers = msg.customers
		m.refreshTable()

		return m, nil

	case customerSavedMsg:
		if msg.err != nil {
			m.status = savedStatus(msg.err)
		} else {
			m.status = "Customer created"
		}

		m.state = customersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case customerDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Customer deleted"
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case customersStateBrowse:
		return m.updateBrowse(msg)
	case customersStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m CustomersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if idx < 0 || idx >= len(m.customers) {
				return m, nil
			}

			return m, m.deleteCmd(m.customers[idx].ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CustomersModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formPhone = ""
	m.formEmail = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("phone cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email (optional)").
				Value(&m.formEmail),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = customersStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m CustomersModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = customersStateBrowse
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

func (m CustomersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
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

	if m.state == customersStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Customer\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CustomersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.customers))
	for _, c := range m.customers {
		rows = append(rows, table.Row{
			c.Name,
			c.Phone,
			c.Email,
			FormatDate(c.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadCustomersMsg struct {
	customers []*ledger.Customer
	err       error
}

func (m CustomersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cs, err := m.ledgerService.ListCustomers(ctx)

		return loadCustomersMsg{customers: cs, err: err}
	}
}

type customerSavedMsg struct {
	err error
}

func (m CustomersModel) saveCmd() tea.Cmd {
	params := ledger.CustomerParams{
		Name:  strings.TrimSpace(m.formName),
		Phone: strings.TrimSpace(m.formPhone),
		Email: strings.TrimSpace(m.formEmail),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.ledgerService.CreateCustomer(ctx, params)

		return customerSavedMsg{err: err}
	}
}

type customerDeletedMsg struct {
	err error
}

func (m CustomersModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return customerDeletedMsg{err: m.ledgerService.DeleteCustomer(ctx, id)}
	}
}
