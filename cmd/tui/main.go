package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mfreitas/tally/cmd/tui/internal/view"
	"github.com/mfreitas/tally/internal/assistant"
	"github.com/mfreitas/tally/internal/config"
	"github.com/mfreitas/tally/internal/database"
	"github.com/mfreitas/tally/internal/ledger"
	ledgerStore "github.com/mfreitas/tally/internal/ledger/store"
)

type model struct {
	ledgerService    *ledger.Service
	assistantService *assistant.Service

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	customersView    view.CustomersModel
	debtsView        view.DebtsModel
	chatView         view.ChatModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewCustomers    View = 3
	ViewDebts        View = 4
	ViewChat         View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(ledgerStore.New(db))

	var assistantClient assistant.Client
	if cfg.Assistant.Mode != assistant.ConfigModeScripted && cfg.Assistant.APIKey != "" {
		assistantClient, err = assistant.NewOpenAIClient(assistant.ClientConfig{
			APIKey:  cfg.Assistant.APIKey,
			Model:   cfg.Assistant.Model,
			BaseURL: cfg.Assistant.BaseURL,
			Timeout: cfg.Server.Timeout,
		})
		if err != nil {
			slog.Error("failed to build assistant client", "error", err)
			os.Exit(1)
		}
	}

	assistantSvc := assistant.NewService(assistant.ServiceConfig{
		Client: assistantClient,
		Mode:   cfg.Assistant.Mode,
	})

	return model{
		ledgerService:    ledgerSvc,
		assistantService: assistantSvc,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(ledgerSvc),
		transactionsView: view.NewTransactionsModel(ledgerSvc),
		customersView:    view.NewCustomersModel(ledgerSvc),
		debtsView:        view.NewDebtsModel(ledgerSvc),
		chatView:         view.NewChatModel(assistantSvc, ledgerSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.ledgerService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.ledgerService)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.ledgerService)

				return m, m.customersView.Init()
			case "4":
				m.currentView = ViewDebts
				m.debtsView = view.NewDebtsModel(m.ledgerService)

				return m, m.debtsView.Init()
			case "5":
				m.currentView = ViewChat
				m.chatView = view.NewChatModel(m.assistantService, m.ledgerService)

				return m, m.chatView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewDebts:
		var newModel tea.Model
		newModel, cmd = m.debtsView.Update(msg)
		m.debtsView = newModel.(view.DebtsModel)
	case ViewChat:
		var newModel tea.Model
		newModel, cmd = m.chatView.Update(msg)
		m.chatView = newModel.(view.ChatModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally TUI\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Customers\n" +
				"4. Debts\n" +
				"5. Assistant Chat\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewCustomers:
		return m.customersView.View()
	case ViewDebts:
		return m.debtsView.View()
	case ViewChat:
		return m.chatView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
