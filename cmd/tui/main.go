package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/suggest"
	suggestStore "github.com/MrJamesThe3rd/tally/internal/suggest/store"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type model struct {
	txService      *transaction.Service
	importService  *importer.Service
	suggestService *suggest.Service
	reportService  *report.Service
	exportService  *export.Service

	currentView View

	listView       view.ListModel
	importView     view.ImportModel
	statementsView view.StatementsModel
	exportView     view.ExportModel
}

type View int

const (
	ViewMenu       View = 0
	ViewList       View = 1
	ViewImport     View = 2
	ViewStatements View = 3
	ViewExport     View = 4
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

	txSvc := transaction.NewService(txStore.New(db))
	impSvc := importer.NewService()
	suggestSvc := suggest.NewService(suggestStore.New(db))
	reportSvc := report.NewService(txSvc)
	expSvc := export.NewService(txSvc)

	return model{
		txService:      txSvc,
		importService:  impSvc,
		suggestService: suggestSvc,
		reportService:  reportSvc,
		exportService:  expSvc,
		currentView:    ViewMenu,
		listView:       view.NewListModel(txSvc),
		importView:     view.NewImportModel(txSvc, impSvc, suggestSvc),
		statementsView: view.NewStatementsModel(reportSvc),
		exportView:     view.NewExportModel(expSvc),
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
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.txService, m.importService, m.suggestService)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewStatements
				m.statementsView = view.NewStatementsModel(m.reportService)

				return m, m.statementsView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewStatements:
		var newModel tea.Model
		newModel, cmd = m.statementsView.Update(msg)
		m.statementsView = newModel.(view.StatementsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally TUI\n\n" +
				"1. Browse Transactions\n" +
				"2. Import Transactions\n" +
				"3. Financial Statements\n" +
				"4. Export Transactions\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.listView.View()
	case ViewImport:
		return m.importView.View()
	case ViewStatements:
		return m.statementsView.View()
	case ViewExport:
		return m.exportView.View()
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
