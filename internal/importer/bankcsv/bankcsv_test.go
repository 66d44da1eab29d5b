package bankcsv

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Acme Bank statement export",
		"Account;12345678",
		"",
		"Date;Description;Amount;Category;Reference",
		"2024-03-05;Product sales;1.000,00;Product Sales;INV-001",
		"2024-03-10;Supplier payment;-300,50;Cost of Goods;PO-17",
		";;;;",
		"Total;;699,50;;",
	}, "\n")

	params, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, transaction.TypeRevenue, params[0].Type)
	assert.True(t, params[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "Product sales", params[0].Description)
	assert.Equal(t, "Product Sales", params[0].Category)
	assert.Equal(t, "INV-001", params[0].Reference)
	assert.Equal(t, transaction.PaymentBank, params[0].PaymentMethod)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), params[0].TransactionDate)

	// Negative amounts become expenses with the absolute value.
	assert.Equal(t, transaction.TypeExpense, params[1].Type)
	assert.True(t, params[1].Amount.Equal(decimal.RequireFromString("300.5")))
}

func TestParser_Parse_MinimalColumns(t *testing.T) {
	input := "Date;Amount\n05-03-2024;-42,00\n"

	params, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, transaction.TypeExpense, params[0].Type)
	assert.Empty(t, params[0].Description)
	assert.Empty(t, params[0].Category)
}

func TestParser_Parse_NoHeader(t *testing.T) {
	input := "just;some;noise\nmore;noise;rows\n"

	_, err := New().Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}

	tests := []testCase{
		{"1.234,56", "1234.56"},
		{"-588,74", "-588.74"},
		{"10,00", "10"},
		{"1234.56", "1234.56"},
		{"-12", "-12"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}

	_, err := parseAmount("n/a")
	assert.Error(t, err)
}
