package report

import "strings"

// Statement bucket names. These double as the JSON line-item keys, so they
// are part of the external contract.
const (
	BucketCostOfGoodsSold   = "cost_of_goods_sold"
	BucketInterestExpense   = "interest_expense"
	BucketIncomeTax         = "income_tax"
	BucketOperatingExpenses = "operating_expenses"

	BucketCurrentAssets        = "current_assets"
	BucketFixedAssets          = "fixed_assets"
	BucketCurrentLiabilities   = "current_liabilities"
	BucketLongTermLiabilities  = "long_term_liabilities"
	BucketOwnerEquity          = "owner_equity"
	BucketRetainedEarnings     = "retained_earnings"
)

// bucketRule routes a category containing any of its keywords into a bucket.
// Rule order is authoritative: the first matching rule wins, so a category
// like "tax on materials" lands in cost_of_goods_sold, never income_tax.
type bucketRule struct {
	bucket   string
	keywords []string
}

var expenseRules = []bucketRule{
	{BucketCostOfGoodsSold, []string{"cost", "goods", "inventory", "materials"}},
	{BucketInterestExpense, []string{"interest"}},
	{BucketIncomeTax, []string{"tax"}},
}

var assetRules = []bucketRule{
	{BucketCurrentAssets, []string{"cash", "bank", "receivable", "inventory", "prepaid"}},
}

var liabilityRules = []bucketRule{
	{BucketCurrentLiabilities, []string{"payable", "short", "accrued"}},
}

var equityRules = []bucketRule{
	{BucketOwnerEquity, []string{"capital", "owner"}},
}

// classifyCategory returns the bucket of the first rule whose keyword list
// matches the lower-cased category, or fallback when nothing matches.
func classifyCategory(rules []bucketRule, category, fallback string) string {
	lowered := strings.ToLower(category)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.bucket
			}
		}
	}

	return fallback
}

// ClassifyExpense routes an EXPENSE category into an income-statement bucket.
func ClassifyExpense(category string) string {
	return classifyCategory(expenseRules, category, BucketOperatingExpenses)
}

// ClassifyAsset routes an ASSET category into a balance-sheet bucket.
func ClassifyAsset(category string) string {
	return classifyCategory(assetRules, category, BucketFixedAssets)
}

// ClassifyLiability routes a LIABILITY category into a balance-sheet bucket.
func ClassifyLiability(category string) string {
	return classifyCategory(liabilityRules, category, BucketLongTermLiabilities)
}

// ClassifyEquity routes an EQUITY category into a balance-sheet bucket.
func ClassifyEquity(category string) string {
	return classifyCategory(equityRules, category, BucketRetainedEarnings)
}

// categoryHasAny reports whether the lower-cased category contains any of
// the given keywords. Used by the cash-flow line-item rules.
func categoryHasAny(category string, keywords ...string) bool {
	lowered := strings.ToLower(category)

	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}

	return false
}
