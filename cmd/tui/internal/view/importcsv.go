package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/suggest"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	txService      *transaction.Service
	importService  *importer.Service
	suggestService *suggest.Service

	state      importState
	filePicker filepicker.Model
	spinner    spinner.Model

	status string
	err    error
}

func NewImportModel(txSvc *transaction.Service, impSvc *importer.Service, suggestSvc *suggest.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".csv"}
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ImportModel{
		txService:      txSvc,
		importService:  impSvc,
		suggestService: suggestSvc,
		filePicker:     fp,
		spinner:        s,
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateResult:
		return "Esc: back to menu"
	case importStateImporting:
		return "Importing..."
	}
	return "Esc: back | Enter: select file"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		if msg.err == nil {
			m.status = fmt.Sprintf("Imported %d transactions, %d failed.", msg.imported, msg.failed)
		}
		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if ok, path := m.filePicker.DidSelectFile(msg); ok {
			m.state = importStateImporting
			return m, tea.Batch(m.spinner.Tick, m.runImportCmd(path))
		}

		return m, cmd

	case importStateImporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a CSV file to import:\n\n" + m.filePicker.View(),
		)

	case importStateImporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Importing transactions...", m.spinner.View()),
		)

	case importStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Import Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", m.status),
		)
	}

	return ""
}

type importResultMsg struct {
	imported int
	failed   int
	err      error
}

func (m ImportModel) runImportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.importService.Import(importer.FormatBankCSV, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		var imported, failed int
		for _, params := range rows {
			if params.Category == "" {
				if category, err := m.suggestService.Suggest(ctx, params.Description); err == nil {
					params.Category = category
				}
			}

			if _, err := m.txService.Create(ctx, params); err != nil {
				failed++
				continue
			}
			imported++
		}

		return importResultMsg{imported: imported, failed: failed}
	}
}
