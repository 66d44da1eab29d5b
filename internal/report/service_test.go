package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// fakeSource serves a fixed transaction set, applying the date window the
// way the store would.
type fakeSource struct {
	txs []*transaction.Transaction
	err error
}

func (f *fakeSource) List(_ context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []*transaction.Transaction

	for _, tx := range f.txs {
		if filter.StartDate != nil && tx.TransactionDate.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && tx.TransactionDate.After(*filter.EndDate) {
			continue
		}

		out = append(out, tx)
	}

	return out, nil
}

func tx(typ transaction.Type, category string, amount int64, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		Type:            typ,
		Category:        category,
		Amount:          decimal.NewFromInt(amount),
		TransactionDate: date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_IncomeStatement(t *testing.T) {
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeRevenue, "Product Sales", 1000, day(2024, 3, 5)),
		tx(transaction.TypeExpense, "Cost of Goods", 300, day(2024, 3, 10)),
		tx(transaction.TypeExpense, "Office Rent", 200, day(2024, 3, 15)),
		// Outside the period, must not count.
		tx(transaction.TypeRevenue, "Product Sales", 9999, day(2024, 4, 1)),
		// Non-P&L types are ignored entirely.
		tx(transaction.TypeAsset, "Cash Deposit", 500, day(2024, 3, 7)),
	}}

	svc := report.NewService(src)

	stmt, err := svc.IncomeStatement(context.Background(), "2024-03")
	require.NoError(t, err)

	assert.True(t, stmt.Revenue.Equal(decimal.NewFromInt(1000)), "revenue = %s", stmt.Revenue)
	assert.True(t, stmt.CostOfGoodsSold.Equal(decimal.NewFromInt(300)))
	assert.True(t, stmt.GrossProfit.Equal(decimal.NewFromInt(700)))
	assert.True(t, stmt.OperatingExpenses.Equal(decimal.NewFromInt(200)))
	assert.True(t, stmt.OperatingIncome.Equal(decimal.NewFromInt(500)))
	assert.True(t, stmt.InterestExpense.IsZero())
	assert.True(t, stmt.IncomeTax.IsZero())
	assert.True(t, stmt.NetIncome.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "2024-03", stmt.Period)
	assert.False(t, stmt.GeneratedAt.IsZero())
}

func TestService_IncomeStatement_RevenueCategoryIrrelevant(t *testing.T) {
	// A REVENUE transaction adds its full amount regardless of category,
	// even one that looks like an expense keyword.
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeRevenue, "inventory clearance", 400, day(2024, 3, 5)),
		tx(transaction.TypeRevenue, "", 600, day(2024, 3, 6)),
	}}

	stmt, err := report.NewService(src).IncomeStatement(context.Background(), "2024-03")
	require.NoError(t, err)
	assert.True(t, stmt.Revenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, stmt.CostOfGoodsSold.IsZero())
}

func TestService_IncomeStatement_Idempotent(t *testing.T) {
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeRevenue, "Sales", 100, day(2024, 3, 5)),
		tx(transaction.TypeExpense, "tax on raw materials", 40, day(2024, 3, 6)),
	}}

	svc := report.NewService(src)

	first, err := svc.IncomeStatement(context.Background(), "2024-03")
	require.NoError(t, err)

	second, err := svc.IncomeStatement(context.Background(), "2024-03")
	require.NoError(t, err)

	// Two builds over an unchanged set differ only in generated_at.
	second.GeneratedAt = first.GeneratedAt
	assert.Equal(t, first, second)

	// Precedence check rides along: the tax-on-materials expense is cost
	// of goods sold, never income tax.
	assert.True(t, first.CostOfGoodsSold.Equal(decimal.NewFromInt(40)))
	assert.True(t, first.IncomeTax.IsZero())
}

func TestService_IncomeStatement_Errors(t *testing.T) {
	t.Run("InvalidPeriod", func(t *testing.T) {
		_, err := report.NewService(&fakeSource{}).IncomeStatement(context.Background(), "2024-13")
		assert.ErrorIs(t, err, report.ErrInvalidPeriod)
	})

	t.Run("SourceError", func(t *testing.T) {
		src := &fakeSource{err: errors.New("connection refused")}
		stmt, err := report.NewService(src).IncomeStatement(context.Background(), "2024-03")
		assert.Error(t, err)
		assert.Nil(t, stmt)
	})
}

func TestService_BalanceSheet(t *testing.T) {
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeAsset, "Cash Deposit", 500, day(2024, 1, 10)),
		tx(transaction.TypeLiability, "Loan Payable", 200, day(2024, 1, 12)),
	}}

	sheet, err := report.NewService(src).BalanceSheet(context.Background(), day(2024, 2, 1))
	require.NoError(t, err)

	assert.True(t, sheet.Assets.CurrentAssets.Equal(decimal.NewFromInt(500)))
	assert.True(t, sheet.Assets.FixedAssets.IsZero())
	assert.True(t, sheet.Assets.TotalAssets.Equal(decimal.NewFromInt(500)))
	assert.True(t, sheet.Liabilities.CurrentLiabilities.Equal(decimal.NewFromInt(200)))
	assert.True(t, sheet.Liabilities.LongTermLiabilities.IsZero())
	assert.True(t, sheet.Liabilities.TotalLiabilities.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, day(2024, 2, 1), sheet.AsOfDate)
}

func TestService_BalanceSheet_RetainedEarnings(t *testing.T) {
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeEquity, "Owner Capital", 1000, day(2024, 1, 1)),
		tx(transaction.TypeEquity, "Reserve fund", 50, day(2024, 1, 2)),
		tx(transaction.TypeRevenue, "Sales", 700, day(2024, 1, 10)),
		tx(transaction.TypeExpense, "Rent", 300, day(2024, 1, 20)),
	}}

	sheet, err := report.NewService(src).BalanceSheet(context.Background(), day(2024, 2, 1))
	require.NoError(t, err)

	assert.True(t, sheet.Equity.OwnerEquity.Equal(decimal.NewFromInt(1000)))
	// 50 non-capital equity + 700 revenue - 300 expense.
	assert.True(t, sheet.Equity.RetainedEarnings.Equal(decimal.NewFromInt(450)),
		"retained earnings = %s", sheet.Equity.RetainedEarnings)
	assert.True(t, sheet.Equity.TotalEquity.Equal(decimal.NewFromInt(1450)))
	assert.True(t, sheet.TotalLiabilitiesAndEquity.Equal(decimal.NewFromInt(1450)))
}

func TestService_BalanceSheet_Monotonic(t *testing.T) {
	// With only ASSET inflows (amounts are never negative), total assets
	// cannot shrink as the as-of date advances.
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeAsset, "Cash", 100, day(2024, 1, 5)),
		tx(transaction.TypeAsset, "Equipment", 900, day(2024, 2, 5)),
		tx(transaction.TypeAsset, "Bank transfer in", 50, day(2024, 3, 5)),
	}}

	svc := report.NewService(src)

	prev := decimal.Zero
	for _, asOf := range []time.Time{day(2024, 1, 31), day(2024, 2, 28), day(2024, 3, 31)} {
		sheet, err := svc.BalanceSheet(context.Background(), asOf)
		require.NoError(t, err)
		assert.True(t, sheet.Assets.TotalAssets.GreaterThanOrEqual(prev))
		prev = sheet.Assets.TotalAssets
	}
}

func TestService_CashFlow(t *testing.T) {
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeRevenue, "Sales", 1000, day(2024, 3, 5)),
		tx(transaction.TypeExpense, "Rent", 300, day(2024, 3, 6)),
		tx(transaction.TypeExpense, "Depreciation - truck", 100, day(2024, 3, 7)),
		tx(transaction.TypeAsset, "Accounts Receivable", 150, day(2024, 3, 8)),
		tx(transaction.TypeAsset, "Inventory restock", 50, day(2024, 3, 9)),
		tx(transaction.TypeAsset, "Equipment purchase", 400, day(2024, 3, 10)),
		tx(transaction.TypeLiability, "Accounts Payable", 80, day(2024, 3, 11)),
		tx(transaction.TypeLiability, "Bank loan", 500, day(2024, 3, 12)),
		tx(transaction.TypeEquity, "Owner withdrawal", 120, day(2024, 3, 13)),
	}}

	stmt, err := report.NewService(src).CashFlow(context.Background(), "2024-03")
	require.NoError(t, err)

	op := stmt.OperatingActivities
	// net income here is plain revenue minus all expenses: 1000 - 400.
	assert.True(t, op.NetIncome.Equal(decimal.NewFromInt(600)))
	assert.True(t, op.Depreciation.Equal(decimal.NewFromInt(100)))
	assert.True(t, op.AccountsReceivable.Equal(decimal.NewFromInt(150)))
	assert.True(t, op.Inventory.Equal(decimal.NewFromInt(50)))
	assert.True(t, op.AccountsPayable.Equal(decimal.NewFromInt(80)))
	// 600 + 100 - 150 - 50 + 80
	assert.True(t, op.NetOperatingCash.Equal(decimal.NewFromInt(580)))

	inv := stmt.InvestingActivities
	assert.True(t, inv.EquipmentPurchases.Equal(decimal.NewFromInt(400)))
	assert.True(t, inv.AssetSales.IsZero())
	assert.True(t, inv.NetInvestingCash.Equal(decimal.NewFromInt(-400)))

	fin := stmt.FinancingActivities
	assert.True(t, fin.LoanProceeds.Equal(decimal.NewFromInt(500)))
	assert.True(t, fin.LoanPayments.IsZero())
	assert.True(t, fin.OwnerWithdrawals.Equal(decimal.NewFromInt(120)))
	assert.True(t, fin.NetFinancingCash.Equal(decimal.NewFromInt(380)))

	assert.True(t, stmt.NetCashFlow.Equal(decimal.NewFromInt(560)))
	assert.Equal(t, "2024-03", stmt.Period)
}

func TestService_CashFlow_NetIncomeComputedIndependently(t *testing.T) {
	// The cash flow path sums revenue minus every expense flat; the income
	// statement routes expenses through classified buckets first. Both
	// computations are kept separate on purpose.
	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeRevenue, "Sales", 1000, day(2024, 3, 1)),
		tx(transaction.TypeExpense, "Cost of Goods", 300, day(2024, 3, 2)),
		tx(transaction.TypeExpense, "Loan interest", 50, day(2024, 3, 3)),
	}}

	svc := report.NewService(src)

	is, err := svc.IncomeStatement(context.Background(), "2024-03")
	require.NoError(t, err)

	cf, err := svc.CashFlow(context.Background(), "2024-03")
	require.NoError(t, err)

	assert.True(t, is.NetIncome.Equal(decimal.NewFromInt(650)))
	assert.True(t, cf.OperatingActivities.NetIncome.Equal(decimal.NewFromInt(650)))
	assert.True(t, is.CostOfGoodsSold.Equal(decimal.NewFromInt(300)))
	assert.True(t, is.InterestExpense.Equal(decimal.NewFromInt(50)))
}
