package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

type statementKind string

const (
	statementIncome   statementKind = "income"
	statementBalance  statementKind = "balance"
	statementCashFlow statementKind = "cashflow"
)

type statementsState int

const (
	statementsStateForm statementsState = iota
	statementsStateLoading
	statementsStateResult
)

var (
	stmtTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	stmtLabelStyle = lipgloss.NewStyle().Width(28)
	stmtTotalStyle = lipgloss.NewStyle().Bold(true)
	stmtBoxStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

type StatementsModel struct {
	CommonModel
	reportService *report.Service

	state   statementsState
	form    *huh.Form
	spinner spinner.Model

	kind   statementKind
	month  string
	body   string
	err    error
}

func NewStatementsModel(svc *report.Service) StatementsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := StatementsModel{
		reportService: svc,
		state:         statementsStateForm,
		spinner:       s,
		month:         time.Now().Format("2006-01"),
	}
	m.form = m.buildForm()

	return m
}

func (m StatementsModel) Title() string { return "Financial Statements" }

func (m StatementsModel) ShortHelp() string {
	switch m.state {
	case statementsStateResult:
		return "Esc: back | n: new statement"
	case statementsStateLoading:
		return "Building statement..."
	}
	return "Esc: back | Enter: confirm"
}

func (m *StatementsModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[statementKind]().
				Key("kind").
				Title("Statement").
				Options(
					huh.NewOption("Income Statement", statementIncome),
					huh.NewOption("Balance Sheet", statementBalance),
					huh.NewOption("Cash Flow Statement", statementCashFlow),
				).
				Value(&m.kind),

			huh.NewInput().
				Key("month").
				Title("Month").
				Placeholder("YYYY-MM").
				Value(&m.month).
				Validate(func(s string) error {
					if _, err := report.ParsePeriod(s); err != nil {
						return fmt.Errorf("expected YYYY-MM")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m StatementsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m StatementsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statementReadyMsg:
		m.state = statementsStateResult
		m.body = msg.body
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
		if m.state == statementsStateResult && msg.String() == "n" {
			m.state = statementsStateForm
			m.form = m.buildForm()
			return m, m.form.Init()
		}
	}

	switch m.state {
	case statementsStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = statementsStateLoading
		return m, tea.Batch(m.spinner.Tick, m.buildStatementCmd())

	case statementsStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m StatementsModel) View() string {
	switch m.state {
	case statementsStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case statementsStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Building statement for %s...", m.spinner.View(), m.month),
		)

	case statementsStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}
		return lipgloss.NewStyle().Padding(1).Render(stmtBoxStyle.Render(m.body))
	}

	return ""
}

type statementReadyMsg struct {
	body string
	err  error
}

func (m StatementsModel) buildStatementCmd() tea.Cmd {
	kind := m.kind
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch kind {
		case statementIncome:
			stmt, err := m.reportService.IncomeStatement(ctx, month)
			if err != nil {
				return statementReadyMsg{err: err}
			}
			return statementReadyMsg{body: renderIncomeStatement(stmt)}

		case statementBalance:
			period, err := report.ParsePeriod(month)
			if err != nil {
				return statementReadyMsg{err: err}
			}
			stmt, err := m.reportService.BalanceSheet(ctx, period.End)
			if err != nil {
				return statementReadyMsg{err: err}
			}
			return statementReadyMsg{body: renderBalanceSheet(stmt)}

		case statementCashFlow:
			stmt, err := m.reportService.CashFlow(ctx, month)
			if err != nil {
				return statementReadyMsg{err: err}
			}
			return statementReadyMsg{body: renderCashFlow(stmt)}
		}

		return statementReadyMsg{err: fmt.Errorf("unknown statement kind %q", kind)}
	}
}

func stmtLine(label, amount string) string {
	return stmtLabelStyle.Render(label) + amount
}

func renderIncomeStatement(s *report.IncomeStatement) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		stmtTitleStyle.Render("Income Statement — "+s.Period),
		"",
		stmtLine("Revenue", FormatAmount(s.Revenue)),
		stmtLine("Cost of Goods Sold", FormatAmount(s.CostOfGoodsSold)),
		stmtLine("Gross Profit", FormatAmount(s.GrossProfit)),
		"",
		stmtLine("Operating Expenses", FormatAmount(s.OperatingExpenses)),
		stmtLine("Operating Income", FormatAmount(s.OperatingIncome)),
		"",
		stmtLine("Interest Expense", FormatAmount(s.InterestExpense)),
		stmtLine("Income Tax", FormatAmount(s.IncomeTax)),
		"",
		stmtTotalStyle.Render(stmtLine("Net Income", FormatAmount(s.NetIncome))),
	)
}

func renderBalanceSheet(s *report.BalanceSheet) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		stmtTitleStyle.Render("Balance Sheet — as of "+FormatDate(s.AsOfDate)),
		"",
		stmtTitleStyle.Render("Assets"),
		stmtLine("Current Assets", FormatAmount(s.Assets.CurrentAssets)),
		stmtLine("Fixed Assets", FormatAmount(s.Assets.FixedAssets)),
		stmtTotalStyle.Render(stmtLine("Total Assets", FormatAmount(s.Assets.TotalAssets))),
		"",
		stmtTitleStyle.Render("Liabilities"),
		stmtLine("Current Liabilities", FormatAmount(s.Liabilities.CurrentLiabilities)),
		stmtLine("Long-Term Liabilities", FormatAmount(s.Liabilities.LongTermLiabilities)),
		stmtTotalStyle.Render(stmtLine("Total Liabilities", FormatAmount(s.Liabilities.TotalLiabilities))),
		"",
		stmtTitleStyle.Render("Equity"),
		stmtLine("Owner Equity", FormatAmount(s.Equity.OwnerEquity)),
		stmtLine("Retained Earnings", FormatAmount(s.Equity.RetainedEarnings)),
		stmtTotalStyle.Render(stmtLine("Total Equity", FormatAmount(s.Equity.TotalEquity))),
		"",
		stmtTotalStyle.Render(stmtLine("Liabilities + Equity", FormatAmount(s.TotalLiabilitiesAndEquity))),
	)
}

func renderCashFlow(s *report.CashFlowStatement) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		stmtTitleStyle.Render("Cash Flow Statement — "+s.Period),
		"",
		stmtTitleStyle.Render("Operating Activities"),
		stmtLine("Net Income", FormatAmount(s.OperatingActivities.NetIncome)),
		stmtLine("Depreciation", FormatAmount(s.OperatingActivities.Depreciation)),
		stmtLine("Accounts Receivable", FormatAmount(s.OperatingActivities.AccountsReceivable)),
		stmtLine("Inventory", FormatAmount(s.OperatingActivities.Inventory)),
		stmtLine("Accounts Payable", FormatAmount(s.OperatingActivities.AccountsPayable)),
		stmtTotalStyle.Render(stmtLine("Net Operating Cash", FormatAmount(s.OperatingActivities.NetOperatingCash))),
		"",
		stmtTitleStyle.Render("Investing Activities"),
		stmtLine("Equipment Purchases", FormatAmount(s.InvestingActivities.EquipmentPurchases)),
		stmtLine("Asset Sales", FormatAmount(s.InvestingActivities.AssetSales)),
		stmtTotalStyle.Render(stmtLine("Net Investing Cash", FormatAmount(s.InvestingActivities.NetInvestingCash))),
		"",
		stmtTitleStyle.Render("Financing Activities"),
		stmtLine("Loan Proceeds", FormatAmount(s.FinancingActivities.LoanProceeds)),
		stmtLine("Loan Payments", FormatAmount(s.FinancingActivities.LoanPayments)),
		stmtLine("Owner Withdrawals", FormatAmount(s.FinancingActivities.OwnerWithdrawals)),
		stmtTotalStyle.Render(stmtLine("Net Financing Cash", FormatAmount(s.FinancingActivities.NetFinancingCash))),
		"",
		stmtTotalStyle.Render(stmtLine("Net Cash Flow", FormatAmount(s.NetCashFlow))),
	)
}
