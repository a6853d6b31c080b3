package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfreitas/tally/internal/ledger"
)

type DashboardModel struct {
	CommonModel
	ledgerService *ledger.Service

	dataset *ledger.Dataset
	loading bool
	err     error
}

func NewDashboardModel(ledgerSvc *ledger.Service) DashboardModel {
	return DashboardModel{
		ledgerService: ledgerSvc,
		loading:       true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		m.dataset = msg.dataset
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	metrics := m.dataset.Metrics

	netStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	if metrics.NetIncome.IsNegative() {
		netStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}

	metricsPanel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(fmt.Sprintf(
			"Total Revenue:  %s\nTotal Expenses: %s\nNet Income:     %s",
			FormatAmount(metrics.TotalRevenue),
			FormatAmount(metrics.TotalExpenses),
			netStyle.Render(FormatAmount(metrics.NetIncome)),
		))

	unpaid := 0
	for _, d := range m.dataset.Debts {
		if d.Status != ledger.DebtPaid {
			unpaid++
		}
	}

	counts := fmt.Sprintf(
		"%d transactions | %d customers | %d debts (%d open)",
		len(m.dataset.Transactions),
		len(m.dataset.Customers),
		len(m.dataset.Debts),
		unpaid,
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		metricsPanel,
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(counts),
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type loadDashboardMsg struct {
	dataset *ledger.Dataset
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ds, err := m.ledgerService.Dataset(ctx)

		return loadDashboardMsg{dataset: ds, err: err}
	}
}
