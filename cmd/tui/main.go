package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/medistock/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/medistock/internal/auth"
	"github.com/MrJamesThe3rd/medistock/internal/checkout"
	checkoutStore "github.com/MrJamesThe3rd/medistock/internal/checkout/store"
	"github.com/MrJamesThe3rd/medistock/internal/config"
	"github.com/MrJamesThe3rd/medistock/internal/export"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/medistock/internal/inventory/store"
	"github.com/MrJamesThe3rd/medistock/internal/report"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
	salesStore "github.com/MrJamesThe3rd/medistock/internal/sales/store"
	"github.com/MrJamesThe3rd/medistock/internal/session"
)

type model struct {
	inventoryService *inventory.Service
	salesService     *sales.Service
	checkoutService  *checkout.Service
	reportService    *report.Service
	exportService    *export.Service

	role        auth.Role
	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	inventoryView view.InventoryModel
	salesView     view.SalesModel
}

type View int

const (
	ViewLogin     View = 0
	ViewMenu      View = 1
	ViewDashboard View = 2
	ViewInventory View = 3
	ViewSales     View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := session.Open(cfg.Session.Dir, session.Seed)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}

	invSvc := inventory.NewService(inventoryStore.New(db))
	salesSvc := sales.NewService(salesStore.New(db))
	checkoutSvc := checkout.NewService(checkoutStore.New(db))

	return model{
		inventoryService: invSvc,
		salesService:     salesSvc,
		checkoutService:  checkoutSvc,
		reportService:    report.NewService(invSvc, salesSvc),
		exportService:    export.NewService(salesSvc),
		currentView:      ViewLogin,
		loginView:        view.NewLoginModel(),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
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
				m.dashboardView = view.NewDashboardModel(m.reportService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.inventoryService, m.role)

				return m, m.inventoryView.Init()
			case "3":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.salesService, m.checkoutService, m.inventoryService, m.exportService, m.role)

				return m, m.salesView.Init()
			}
		}
	case view.LoginMsg:
		m.role = msg.Role
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		access := "Read-only (view)"
		if m.role.CanEdit() {
			access = "Full permissions"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Medistock\n\n" +
				"1. Dashboard\n" +
				"2. Inventory\n" +
				"3. Sales\n\n" +
				"Access: " + access + "\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewInventory:
		return m.inventoryView.View()
	case ViewSales:
		return m.salesView.View()
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
