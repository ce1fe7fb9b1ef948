package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

type testTx struct {
	amount   decimal.Decimal
	date     time.Time
	category string
	merchant string
}

func (t testTx) Amount() decimal.Decimal { return t.amount }
func (t testTx) Date() time.Time         { return t.date }
func (t testTx) Category() string        { return t.category }
func (t testTx) Merchant() string        { return t.merchant }

type testAccount struct {
	kind    AccountKind
	balance decimal.Decimal
}

func (a testAccount) Kind() AccountKind        { return a.kind }
func (a testAccount) Balance() decimal.Decimal { return a.balance }

type testBudget struct {
	category string
	limit    decimal.Decimal
	period   BudgetPeriod
}

func (b testBudget) Category() string       { return b.category }
func (b testBudget) Limit() decimal.Decimal { return b.limit }
func (b testBudget) Period() BudgetPeriod   { return b.period }

func tx(amount string, daysAgo int, category string) testTx {
	return testTx{
		amount:   decimal.RequireFromString(amount),
		date:     testNow.AddDate(0, 0, -daysAgo),
		category: category,
	}
}

func merchantTx(amount string, daysAgo int, category, merchant string) testTx {
	t := tx(amount, daysAgo, category)
	t.merchant = merchant
	return t
}

func txs(items ...testTx) []Transaction {
	out := make([]Transaction, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// -- SpendingVelocityIncrease tests --

func TestSpendingVelocityIncrease_NoExpenses(t *testing.T) {
	got := SpendingVelocityIncrease(txs(
		tx("2500.00", 5, "Salary"),
		tx("2500.00", 35, "Salary"),
	), testNow)

	assert.Equal(t, 0.0, got.Percent)
	assert.True(t, got.FromZero)
}

func TestSpendingVelocityIncrease_EmptyInput(t *testing.T) {
	got := SpendingVelocityIncrease(nil, testNow)
	assert.Equal(t, 0.0, got.Percent)
}

func TestSpendingVelocityIncrease_FromZeroPrevious(t *testing.T) {
	got := SpendingVelocityIncrease(txs(
		tx("-40.00", 3, "Dining"),
		tx("-15.00", 12, "Coffee"),
	), testNow)

	assert.Equal(t, 100.0, got.Percent)
	assert.True(t, got.FromZero)
}

func TestSpendingVelocityIncrease_Increase(t *testing.T) {
	got := SpendingVelocityIncrease(txs(
		tx("-150.00", 10, "Groceries"),
		tx("-100.00", 45, "Groceries"),
		tx("-999.00", 90, "Groceries"),
	), testNow)

	assert.InDelta(t, 50.0, got.Percent, 1e-9)
	assert.False(t, got.FromZero)
}

func TestSpendingVelocityIncrease_Decrease(t *testing.T) {
	got := SpendingVelocityIncrease(txs(
		tx("-50.00", 10, "Groceries"),
		tx("-200.00", 40, "Groceries"),
	), testNow)

	assert.InDelta(t, -75.0, got.Percent, 1e-9)
}

func TestSpendingVelocityIncrease_Idempotent(t *testing.T) {
	input := txs(
		tx("-150.00", 10, "Groceries"),
		tx("-100.00", 45, "Groceries"),
	)
	assert.Equal(t, SpendingVelocityIncrease(input, testNow), SpendingVelocityIncrease(input, testNow))
}

// -- CategoryTrends tests --

func TestCategoryTrends(t *testing.T) {
	trends := CategoryTrends(txs(
		tx("-150.00", 5, "Groceries"),
		tx("-100.00", 40, "Groceries"),
		tx("-1000.00", 2, "Rent"),
		tx("-1000.00", 32, "Rent"),
		tx("-300.00", 8, "Travel"),
		tx("-80.00", 90, "Old"),
		tx("3000.00", 1, "Salary"),
	), testNow)

	require.Len(t, trends, 3)

	assert.Equal(t, "Travel", trends[0].Category)
	assert.True(t, trends[0].FromZero)
	assert.Equal(t, 1.0, trends[0].PercentChange)
	assert.True(t, trends[0].ChangeAmount.Equal(dec("300")))

	assert.Equal(t, "Groceries", trends[1].Category)
	assert.InDelta(t, 0.5, trends[1].PercentChange, 1e-9)
	assert.True(t, trends[1].CurrentSpend.Equal(dec("150")))
	assert.True(t, trends[1].PreviousSpend.Equal(dec("100")))
	assert.Equal(t, 1, trends[1].TransactionCount)

	assert.Equal(t, "Rent", trends[2].Category)
	assert.Equal(t, 0.0, trends[2].PercentChange)
	assert.True(t, trends[2].ChangeAmount.IsZero())
}

func TestCategoryTrends_NoExpenses(t *testing.T) {
	assert.Empty(t, CategoryTrends(txs(tx("10.00", 1, "Refund")), testNow))
}

// -- SpentAmount tests --

func TestSpentAmount(t *testing.T) {
	input := txs(
		tx("-100.00", 5, "Dining"),
		tx("-50.00", 20, "Dining"),
		tx("-30.00", 3, "dining"),
		tx("40.00", 2, "Dining"),
		tx("-70.00", 40, "Dining"),
		tx("-500.00", 4, "Rent"),
	)

	monthly := SpentAmount(input, testBudget{category: "Dining", limit: dec("200"), period: BudgetPeriodMonthly}, testNow)
	assert.True(t, monthly.Equal(dec("150")), "got %s", monthly)

	quarterly := SpentAmount(input, testBudget{category: "Dining", limit: dec("600"), period: BudgetPeriodQuarterly}, testNow)
	assert.True(t, quarterly.Equal(dec("220")), "got %s", quarterly)
}

func TestSpentAmount_IncomeOnly(t *testing.T) {
	got := SpentAmount(txs(tx("100.00", 1, "Dining")), testBudget{category: "Dining", limit: dec("10")}, testNow)
	assert.True(t, got.IsZero())
}

// -- MonthlyExpenses tests --

func TestMonthlyExpenses_Floor(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		name  string
		input []Transaction
		want  string
	}{
		{name: "empty", input: nil, want: "1"},
		{name: "income only", input: txs(tx("900.00", 2, "Salary")), want: "1"},
		{name: "below floor", input: txs(tx("-0.50", 2, "Fees")), want: "1"},
		{name: "outside window", input: txs(tx("-400.00", 45, "Rent")), want: "1"},
		{name: "normal", input: txs(tx("-200.00", 2, "Rent"), tx("-50.00", 29, "Dining")), want: "250"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MonthlyExpenses(tc.input, testNow, policy)
			assert.True(t, got.Equal(dec(tc.want)), "got %s", got)
			assert.True(t, got.GreaterThanOrEqual(decimal.NewFromInt(1)))
		})
	}
}

// -- EmergencyCoverage tests --

func TestEmergencyCoverage(t *testing.T) {
	accounts := []Account{
		testAccount{kind: AccountKindSavings, balance: dec("500")},
		testAccount{kind: AccountKindChecking, balance: dec("1000")},
	}

	got := EmergencyCoverage(accounts, dec("1000"))
	assert.False(t, got.Unbounded)
	assert.InDelta(t, 0.5, got.Months, 1e-9)
}

func TestEmergencyCoverage_NoExpenses(t *testing.T) {
	accounts := []Account{testAccount{kind: AccountKindSavings, balance: dec("500")}}

	for _, monthly := range []string{"0", "-10"} {
		got := EmergencyCoverage(accounts, dec(monthly))
		assert.True(t, got.Unbounded)
		assert.True(t, math.IsInf(got.Months, 1))
	}
}

func TestEmergencyCoverage_NegativeSavingsClamped(t *testing.T) {
	accounts := []Account{testAccount{kind: AccountKindSavings, balance: dec("-300")}}

	got := EmergencyCoverage(accounts, dec("100"))
	assert.Equal(t, 0.0, got.Months)
	assert.False(t, math.IsInf(got.Months, 0))
}

// -- CashFlowWindow tests --

func TestCashFlowWindow(t *testing.T) {
	flow := CashFlowWindow(txs(
		tx("2000.00", 5, "Salary"),
		tx("-500.00", 3, "Rent"),
		tx("-100.00", 40, "Dining"),
	), 30, testNow)

	assert.True(t, flow.Income.Equal(dec("2000")))
	assert.True(t, flow.Expenses.Equal(dec("500")))
	assert.True(t, flow.Net.Equal(dec("1500")))
}

func TestCashFlowWindow_EmptyWindow(t *testing.T) {
	flow := CashFlowWindow(txs(tx("-10.00", 0, "Dining")), 0, testNow)

	assert.True(t, flow.Income.IsZero())
	assert.True(t, flow.Expenses.IsZero())
	assert.True(t, flow.Net.IsZero())
}
