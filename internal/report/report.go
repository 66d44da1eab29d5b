package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeStatement is the monthly profit-and-loss view. Field names are a
// compatibility contract with API consumers.
type IncomeStatement struct {
	Revenue           decimal.Decimal `json:"revenue"`
	CostOfGoodsSold   decimal.Decimal `json:"cost_of_goods_sold"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	OperatingIncome   decimal.Decimal `json:"operating_income"`
	InterestExpense   decimal.Decimal `json:"interest_expense"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	NetIncome         decimal.Decimal `json:"net_income"`
	Period            string          `json:"period"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

// BalanceSheet is the cumulative position as of a date.
type BalanceSheet struct {
	Assets                    BalanceSheetAssets      `json:"assets"`
	Liabilities               BalanceSheetLiabilities `json:"liabilities"`
	Equity                    BalanceSheetEquity      `json:"equity"`
	TotalLiabilitiesAndEquity decimal.Decimal         `json:"total_liabilities_and_equity"`
	AsOfDate                  time.Time               `json:"as_of_date"`
	GeneratedAt               time.Time               `json:"generated_at"`
}

type BalanceSheetAssets struct {
	CurrentAssets decimal.Decimal `json:"current_assets"`
	FixedAssets   decimal.Decimal `json:"fixed_assets"`
	TotalAssets   decimal.Decimal `json:"total_assets"`
}

type BalanceSheetLiabilities struct {
	CurrentLiabilities  decimal.Decimal `json:"current_liabilities"`
	LongTermLiabilities decimal.Decimal `json:"long_term_liabilities"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`
}

type BalanceSheetEquity struct {
	OwnerEquity      decimal.Decimal `json:"owner_equity"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// CashFlowStatement is the monthly cash movement view.
//
// Its operating net_income is deliberately a different number than the
// income statement's: it is a plain revenue-minus-expense sum that never
// carves out cost of goods, interest or tax. The two are kept as separate
// computations; do not unify them.
type CashFlowStatement struct {
	OperatingActivities OperatingActivities `json:"operating_activities"`
	InvestingActivities InvestingActivities `json:"investing_activities"`
	FinancingActivities FinancingActivities `json:"financing_activities"`
	NetCashFlow         decimal.Decimal     `json:"net_cash_flow"`
	Period              string              `json:"period"`
	GeneratedAt         time.Time           `json:"generated_at"`
}

type OperatingActivities struct {
	NetIncome          decimal.Decimal `json:"net_income"`
	Depreciation       decimal.Decimal `json:"depreciation"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	Inventory          decimal.Decimal `json:"inventory"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	NetOperatingCash   decimal.Decimal `json:"net_operating_cash"`
}

type InvestingActivities struct {
	EquipmentPurchases decimal.Decimal `json:"equipment_purchases"`
	AssetSales         decimal.Decimal `json:"asset_sales"`
	NetInvestingCash   decimal.Decimal `json:"net_investing_cash"`
}

type FinancingActivities struct {
	LoanProceeds     decimal.Decimal `json:"loan_proceeds"`
	LoanPayments     decimal.Decimal `json:"loan_payments"`
	OwnerWithdrawals decimal.Decimal `json:"owner_withdrawals"`
	NetFinancingCash decimal.Decimal `json:"net_financing_cash"`
}
