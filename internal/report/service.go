package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// TransactionSource supplies the transactions a statement is built from.
// *transaction.Service satisfies it.
type TransactionSource interface {
	List(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error)
}

// Service builds financial statements. Every call is a fresh recomputation
// over a fresh query; nothing is cached or persisted, so concurrent builds
// are safe as long as the store supports concurrent reads.
type Service struct {
	source TransactionSource
}

func NewService(source TransactionSource) *Service {
	return &Service{source: source}
}

func (s *Service) listWindow(ctx context.Context, start, end *time.Time) ([]*transaction.Transaction, error) {
	txs, err := s.source.List(ctx, transaction.Filter{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return txs, nil
}

// IncomeStatement builds the profit-and-loss statement for a "YYYY-MM"
// period. Only REVENUE and EXPENSE transactions are considered.
func (s *Service) IncomeStatement(ctx context.Context, period string) (*IncomeStatement, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	txs, err := s.listWindow(ctx, &p.Start, &p.End)
	if err != nil {
		return nil, err
	}

	stmt := &IncomeStatement{Period: p.Token}

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeRevenue:
			stmt.Revenue = stmt.Revenue.Add(tx.Amount)
		case transaction.TypeExpense:
			switch ClassifyExpense(tx.Category) {
			case BucketCostOfGoodsSold:
				stmt.CostOfGoodsSold = stmt.CostOfGoodsSold.Add(tx.Amount)
			case BucketInterestExpense:
				stmt.InterestExpense = stmt.InterestExpense.Add(tx.Amount)
			case BucketIncomeTax:
				stmt.IncomeTax = stmt.IncomeTax.Add(tx.Amount)
			default:
				stmt.OperatingExpenses = stmt.OperatingExpenses.Add(tx.Amount)
			}
		}
	}

	stmt.GrossProfit = stmt.Revenue.Sub(stmt.CostOfGoodsSold)
	stmt.OperatingIncome = stmt.GrossProfit.Sub(stmt.OperatingExpenses)
	stmt.NetIncome = stmt.OperatingIncome.Sub(stmt.InterestExpense).Sub(stmt.IncomeTax)
	stmt.GeneratedAt = time.Now().UTC()

	return stmt, nil
}

// BalanceSheet builds the cumulative position from the earliest record
// through asOf. Retained earnings absorb all revenue and expense over the
// same window on top of non-capital equity entries. The two sides are
// reported as-is; a divergence is never reconciled or treated as an error.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (*BalanceSheet, error) {
	txs, err := s.listWindow(ctx, nil, &asOf)
	if err != nil {
		return nil, err
	}

	sheet := &BalanceSheet{AsOfDate: asOf}

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeAsset:
			if ClassifyAsset(tx.Category) == BucketCurrentAssets {
				sheet.Assets.CurrentAssets = sheet.Assets.CurrentAssets.Add(tx.Amount)
			} else {
				sheet.Assets.FixedAssets = sheet.Assets.FixedAssets.Add(tx.Amount)
			}
		case transaction.TypeLiability:
			if ClassifyLiability(tx.Category) == BucketCurrentLiabilities {
				sheet.Liabilities.CurrentLiabilities = sheet.Liabilities.CurrentLiabilities.Add(tx.Amount)
			} else {
				sheet.Liabilities.LongTermLiabilities = sheet.Liabilities.LongTermLiabilities.Add(tx.Amount)
			}
		case transaction.TypeEquity:
			if ClassifyEquity(tx.Category) == BucketOwnerEquity {
				sheet.Equity.OwnerEquity = sheet.Equity.OwnerEquity.Add(tx.Amount)
			} else {
				sheet.Equity.RetainedEarnings = sheet.Equity.RetainedEarnings.Add(tx.Amount)
			}
		case transaction.TypeRevenue:
			sheet.Equity.RetainedEarnings = sheet.Equity.RetainedEarnings.Add(tx.Amount)
		case transaction.TypeExpense:
			sheet.Equity.RetainedEarnings = sheet.Equity.RetainedEarnings.Sub(tx.Amount)
		}
	}

	sheet.Assets.TotalAssets = sheet.Assets.CurrentAssets.Add(sheet.Assets.FixedAssets)
	sheet.Liabilities.TotalLiabilities = sheet.Liabilities.CurrentLiabilities.Add(sheet.Liabilities.LongTermLiabilities)
	sheet.Equity.TotalEquity = sheet.Equity.OwnerEquity.Add(sheet.Equity.RetainedEarnings)
	sheet.TotalLiabilitiesAndEquity = sheet.Liabilities.TotalLiabilities.Add(sheet.Equity.TotalEquity)
	sheet.GeneratedAt = time.Now().UTC()

	return sheet, nil
}

// CashFlow builds the cash flow statement for a "YYYY-MM" period.
//
// asset_sales and loan_payments have no classification path feeding them;
// they stay as explicit always-zero line items for compatibility.
func (s *Service) CashFlow(ctx context.Context, period string) (*CashFlowStatement, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	txs, err := s.listWindow(ctx, &p.Start, &p.End)
	if err != nil {
		return nil, err
	}

	stmt := &CashFlowStatement{Period: p.Token}
	op := &stmt.OperatingActivities
	inv := &stmt.InvestingActivities
	fin := &stmt.FinancingActivities

	var revenue, expenses decimal.Decimal

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeRevenue:
			revenue = revenue.Add(tx.Amount)
		case transaction.TypeExpense:
			expenses = expenses.Add(tx.Amount)

			if categoryHasAny(tx.Category, "depreciation") {
				op.Depreciation = op.Depreciation.Add(tx.Amount)
			}
		case transaction.TypeAsset:
			if categoryHasAny(tx.Category, "receivable") {
				op.AccountsReceivable = op.AccountsReceivable.Add(tx.Amount)
			}

			if categoryHasAny(tx.Category, "inventory") {
				op.Inventory = op.Inventory.Add(tx.Amount)
			}

			if categoryHasAny(tx.Category, "equipment", "machinery") {
				inv.EquipmentPurchases = inv.EquipmentPurchases.Add(tx.Amount)
			}
		case transaction.TypeLiability:
			if categoryHasAny(tx.Category, "payable") {
				op.AccountsPayable = op.AccountsPayable.Add(tx.Amount)
			}

			if categoryHasAny(tx.Category, "loan") {
				fin.LoanProceeds = fin.LoanProceeds.Add(tx.Amount)
			}
		case transaction.TypeEquity:
			if categoryHasAny(tx.Category, "withdrawal", "drawing") {
				fin.OwnerWithdrawals = fin.OwnerWithdrawals.Add(tx.Amount)
			}
		}
	}

	op.NetIncome = revenue.Sub(expenses)
	op.NetOperatingCash = op.NetIncome.
		Add(op.Depreciation).
		Sub(op.AccountsReceivable).
		Sub(op.Inventory).
		Add(op.AccountsPayable)

	inv.NetInvestingCash = inv.EquipmentPurchases.Neg().Add(inv.AssetSales)

	fin.NetFinancingCash = fin.LoanProceeds.Sub(fin.LoanPayments).Sub(fin.OwnerWithdrawals)

	stmt.NetCashFlow = op.NetOperatingCash.Add(inv.NetInvestingCash).Add(fin.NetFinancingCash)
	stmt.GeneratedAt = time.Now().UTC()

	return stmt, nil
}
