package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

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

func TestService_Revenue(t *testing.T) {
	now := time.Now().UTC()
	recent := now.AddDate(0, 0, -5)
	older := now.AddDate(0, 0, -45)
	ancient := now.AddDate(0, 0, -400) // outside any reasonable window

	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeRevenue, "Product Sales", 600, recent),
		tx(transaction.TypeRevenue, "Consulting", 300, recent),
		tx(transaction.TypeRevenue, "Product Sales", 100, older),
		tx(transaction.TypeExpense, "Rent", 200, recent),
		tx(transaction.TypeRevenue, "Product Sales", 9999, ancient),
	}}

	got, err := analytics.NewService(src).Revenue(context.Background(), 3)
	require.NoError(t, err)

	// 90-day window keeps the recent and older rows, drops the ancient one.
	var totalRevenue, totalExpenses decimal.Decimal
	for _, m := range got.MonthlyTrend {
		totalRevenue = totalRevenue.Add(m.Revenue)
		totalExpenses = totalExpenses.Add(m.Expenses)
		assert.True(t, m.Profit.Equal(m.Revenue.Sub(m.Expenses)))
	}

	assert.True(t, totalRevenue.Equal(decimal.NewFromInt(1000)), "total revenue = %s", totalRevenue)
	assert.True(t, totalExpenses.Equal(decimal.NewFromInt(200)))

	// Buckets come out in chronological order.
	for i := 1; i < len(got.MonthlyTrend); i++ {
		assert.Less(t, got.MonthlyTrend[i-1].Month, got.MonthlyTrend[i].Month)
	}

	require.Len(t, got.RevenueSources, 2)
	assert.Equal(t, "Product Sales", got.RevenueSources[0].Category)
	assert.True(t, got.RevenueSources[0].Amount.Equal(decimal.NewFromInt(700)))
	assert.InDelta(t, 70.0, got.RevenueSources[0].Percentage, 0.01)
	assert.Equal(t, "Consulting", got.RevenueSources[1].Category)
	assert.InDelta(t, 30.0, got.RevenueSources[1].Percentage, 0.01)

	// Percentages sum to 100 and every slice gets a palette color.
	var pctSum float64
	for _, s := range got.RevenueSources {
		pctSum += s.Percentage
		assert.NotEmpty(t, s.Color)
	}
	assert.InDelta(t, 100.0, pctSum, 0.01)

	assert.NotEqual(t, got.RevenueSources[0].Color, got.RevenueSources[1].Color)
}

func TestService_Revenue_Empty(t *testing.T) {
	got, err := analytics.NewService(&fakeSource{}).Revenue(context.Background(), 6)
	require.NoError(t, err)
	assert.Empty(t, got.MonthlyTrend)
	assert.Empty(t, got.RevenueSources)
}

func TestService_Revenue_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection reset")}
	_, err := analytics.NewService(src).Revenue(context.Background(), 6)
	assert.Error(t, err)
}

func TestService_CashFlow(t *testing.T) {
	now := time.Now().UTC()
	recent := now.AddDate(0, 0, -5)

	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeRevenue, "Sales", 1000, recent),
		tx(transaction.TypeExpense, "Rent", 300, recent),
		tx(transaction.TypeExpense, "Depreciation", 100, recent), // added back
		tx(transaction.TypeAsset, "Vehicle purchase", 400, recent),
		tx(transaction.TypeAsset, "Cash deposit", 250, recent), // not investing
		tx(transaction.TypeLiability, "Bank loan", 500, recent),
		tx(transaction.TypeEquity, "Owner drawing", 150, recent),
	}}

	got, err := analytics.NewService(src).CashFlow(context.Background(), 6)
	require.NoError(t, err)
	require.NotEmpty(t, got.MonthlyTrend)

	var totalOp, totalInv, totalFin decimal.Decimal
	for _, m := range got.MonthlyTrend {
		totalOp = totalOp.Add(m.Operating)
		totalInv = totalInv.Add(m.Investing)
		totalFin = totalFin.Add(m.Financing)
		assert.True(t, m.Net.Equal(m.Operating.Add(m.Investing).Add(m.Financing)))
	}

	// 1000 - 400 expenses + 100 depreciation add-back.
	assert.True(t, totalOp.Equal(decimal.NewFromInt(700)), "operating = %s", totalOp)
	assert.True(t, totalInv.Equal(decimal.NewFromInt(-400)))
	// 500 loan - 150 drawing.
	assert.True(t, totalFin.Equal(decimal.NewFromInt(350)))

	require.Len(t, got.CashFlowCategories, 3)

	var pctSum float64
	for _, c := range got.CashFlowCategories {
		pctSum += c.Percentage
		assert.NotEmpty(t, c.Color)
	}
	assert.InDelta(t, 100.0, pctSum, 0.01)

	assert.Equal(t, "operating", got.CashFlowCategories[0].Name)
	assert.True(t, got.CashFlowCategories[1].Amount.Equal(decimal.NewFromInt(-400)))
}

func TestService_CashFlow_ZeroDenominator(t *testing.T) {
	// Only transactions that feed no activity leave every percentage at 0.
	now := time.Now().UTC()

	src := &fakeSource{txs: []*transaction.Transaction{
		tx(transaction.TypeAsset, "Cash deposit", 250, now.AddDate(0, 0, -3)),
		tx(transaction.TypeTransfer, "Between accounts", 90, now.AddDate(0, 0, -2)),
	}}

	got, err := analytics.NewService(src).CashFlow(context.Background(), 6)
	require.NoError(t, err)

	for _, c := range got.CashFlowCategories {
		assert.Zero(t, c.Percentage)
		assert.True(t, c.Amount.IsZero())
	}
}
