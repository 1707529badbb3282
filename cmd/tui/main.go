package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/billsnap/billsnap/cmd/tui/internal/view"
	"github.com/billsnap/billsnap/internal/bill"
	billStore "github.com/billsnap/billsnap/internal/bill/store"
	"github.com/billsnap/billsnap/internal/config"
	"github.com/billsnap/billsnap/internal/database"
	"github.com/billsnap/billsnap/internal/payment"
	"github.com/billsnap/billsnap/internal/payment/razorpay"
	paymentStore "github.com/billsnap/billsnap/internal/payment/store"
)

type model struct {
	billService    *bill.Service
	paymentService *payment.Service

	currentView View

	billsView view.BillsModel
}

type View int

const (
	ViewMenu  View = 0
	ViewBills View = 1
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

	billSvc := bill.NewService(billStore.New(db))
	gateway := razorpay.New(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	paySvc := payment.NewService(paymentStore.New(db), gateway, billSvc, cfg.Razorpay.KeySecret)

	return model{
		billService:    billSvc,
		paymentService: paySvc,
		currentView:    ViewMenu,
		billsView:      view.NewBillsModel(billSvc, paySvc),
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
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.billService, m.paymentService)

				return m, m.billsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"BillSnap TUI\n\n" +
				"1. Browse Bills\n\n" +
				"q. Quit",
		)
	case ViewBills:
		return m.billsView.View()
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
