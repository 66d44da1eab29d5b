package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// TransactionSource supplies the transactions the aggregator works over.
// *transaction.Service satisfies it.
type TransactionSource interface {
	List(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error)
}

// palette is the fixed color cycle assigned to breakdown slices.
var palette = [7]string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4", "#EC4899",
}

type Service struct {
	source TransactionSource
}

func NewService(source TransactionSource) *Service {
	return &Service{source: source}
}

// MonthlyRevenue is one (year, month) bucket of the revenue trend.
type MonthlyRevenue struct {
	Month    string          `json:"month"` // "YYYY-MM"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// RevenueSource is one category slice of the revenue breakdown.
type RevenueSource struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Color      string          `json:"color"`
}

type RevenueAnalytics struct {
	MonthlyTrend   []MonthlyRevenue `json:"monthly_trend"`
	RevenueSources []RevenueSource  `json:"revenue_sources"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// monthKey buckets a date by its actual calendar (year, month).
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// windowStart is the trailing boundary for an N-month window. It is 30-day
// arithmetic on purpose, not calendar alignment, so grouping by actual month
// may produce more or fewer than N buckets.
func windowStart(months int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -30*months)
}

// Revenue builds the trailing N-month revenue trend and the per-category
// revenue breakdown.
func (s *Service) Revenue(ctx context.Context, months int) (*RevenueAnalytics, error) {
	start := windowStart(months)

	txs, err := s.source.List(ctx, transaction.Filter{StartDate: &start})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	byMonth := make(map[string]*MonthlyRevenue)
	bySource := make(map[string]decimal.Decimal)

	var sourceOrder []string

	var totalRevenue decimal.Decimal

	for _, tx := range txs {
		key := monthKey(tx.TransactionDate)

		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthlyRevenue{Month: key}
			byMonth[key] = bucket
		}

		switch tx.Type {
		case transaction.TypeRevenue:
			bucket.Revenue = bucket.Revenue.Add(tx.Amount)
			totalRevenue = totalRevenue.Add(tx.Amount)

			if _, seen := bySource[tx.Category]; !seen {
				sourceOrder = append(sourceOrder, tx.Category)
			}

			bySource[tx.Category] = bySource[tx.Category].Add(tx.Amount)
		case transaction.TypeExpense:
			bucket.Expenses = bucket.Expenses.Add(tx.Amount)
		}
	}

	out := &RevenueAnalytics{GeneratedAt: time.Now().UTC()}

	for _, key := range sortedKeys(byMonth) {
		b := byMonth[key]
		b.Profit = b.Revenue.Sub(b.Expenses)
		out.MonthlyTrend = append(out.MonthlyTrend, *b)
	}

	sources := make([]RevenueSource, 0, len(sourceOrder))
	for _, category := range sourceOrder {
		sources = append(sources, RevenueSource{
			Category:   category,
			Amount:     bySource[category],
			Percentage: percentage(bySource[category], totalRevenue),
		})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Amount.GreaterThan(sources[j].Amount)
	})

	for i := range sources {
		sources[i].Color = palette[i%len(palette)]
	}

	out.RevenueSources = sources

	return out, nil
}

// MonthlyCashFlow is one (year, month) bucket of the cash-flow trend.
type MonthlyCashFlow struct {
	Month     string          `json:"month"`
	Operating decimal.Decimal `json:"operating"`
	Investing decimal.Decimal `json:"investing"`
	Financing decimal.Decimal `json:"financing"`
	Net       decimal.Decimal `json:"net"`
}

// CashFlowCategory is one activity slice of the whole-window breakdown.
type CashFlowCategory struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Color      string          `json:"color"`
}

type CashFlowAnalytics struct {
	MonthlyTrend       []MonthlyCashFlow  `json:"monthly_trend"`
	CashFlowCategories []CashFlowCategory `json:"cash_flow_categories"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// CashFlow builds the trailing N-month cash-flow trend and the activity
// breakdown over the entire window.
func (s *Service) CashFlow(ctx context.Context, months int) (*CashFlowAnalytics, error) {
	start := windowStart(months)

	txs, err := s.source.List(ctx, transaction.Filter{StartDate: &start})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	byMonth := make(map[string]*MonthlyCashFlow)

	bucketFor := func(t time.Time) *MonthlyCashFlow {
		key := monthKey(t)

		b, ok := byMonth[key]
		if !ok {
			b = &MonthlyCashFlow{Month: key}
			byMonth[key] = b
		}

		return b
	}

	for _, tx := range txs {
		b := bucketFor(tx.TransactionDate)

		switch tx.Type {
		case transaction.TypeRevenue:
			b.Operating = b.Operating.Add(tx.Amount)
		case transaction.TypeExpense:
			b.Operating = b.Operating.Sub(tx.Amount)

			// Depreciation is a non-cash expense, added back.
			if containsAny(tx.Category, "depreciation") {
				b.Operating = b.Operating.Add(tx.Amount)
			}
		case transaction.TypeAsset:
			if containsAny(tx.Category, "equipment", "machinery", "building", "vehicle") {
				b.Investing = b.Investing.Sub(tx.Amount)
			}
		case transaction.TypeLiability:
			if containsAny(tx.Category, "loan") {
				b.Financing = b.Financing.Add(tx.Amount)
			}
		case transaction.TypeEquity:
			if containsAny(tx.Category, "withdrawal", "drawing") {
				b.Financing = b.Financing.Sub(tx.Amount)
			}
		}
	}

	out := &CashFlowAnalytics{GeneratedAt: time.Now().UTC()}

	var totalOp, totalInv, totalFin decimal.Decimal

	for _, key := range sortedKeys(byMonth) {
		b := byMonth[key]
		b.Net = b.Operating.Add(b.Investing).Add(b.Financing)
		out.MonthlyTrend = append(out.MonthlyTrend, *b)

		totalOp = totalOp.Add(b.Operating)
		totalInv = totalInv.Add(b.Investing)
		totalFin = totalFin.Add(b.Financing)
	}

	// The breakdown denominator is the sum of activity magnitudes over the
	// whole window, and each slice's share uses its magnitude too, so the
	// percentages sum to 100 when the denominator is positive.
	denom := totalOp.Abs().Add(totalInv.Abs()).Add(totalFin.Abs())

	categories := []CashFlowCategory{
		{Name: "operating", Amount: totalOp},
		{Name: "investing", Amount: totalInv},
		{Name: "financing", Amount: totalFin},
	}
	for i := range categories {
		categories[i].Percentage = percentage(categories[i].Amount.Abs(), denom)
		categories[i].Color = palette[i%len(palette)]
	}

	out.CashFlowCategories = categories

	return out, nil
}

func percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}

	f, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Float64()

	return f
}

func containsAny(category string, keywords ...string) bool {
	lowered := strings.ToLower(category)

	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}

	return false
}

func sortedKeys[V any](m map[string]*V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
