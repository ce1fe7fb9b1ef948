package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const trendWindowDays = 30

// window is the half-open interval [start, end).
type window struct {
	start time.Time
	end   time.Time
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// consecutiveWindows returns [now-days, now) and [now-2*days, now-days).
func consecutiveWindows(now time.Time, days int) (current, previous window) {
	currentStart := now.AddDate(0, 0, -days)
	previousStart := now.AddDate(0, 0, -2*days)
	return window{start: currentStart, end: now}, window{start: previousStart, end: currentStart}
}

// trailing reports whether t falls in [now-days, now].
func trailing(t, now time.Time, days int) bool {
	return !t.Before(now.AddDate(0, 0, -days)) && !t.After(now)
}

func isExpense(tx Transaction) bool {
	return tx.Amount().IsNegative()
}

// SpendingVelocityIncrease is the percentage change of total expenses between
// the last 30 days and the 30 days before that.
func SpendingVelocityIncrease(transactions []Transaction, now time.Time) PercentChange {
	return spendingVelocity(transactions, now, trendWindowDays)
}

func spendingVelocity(transactions []Transaction, now time.Time, days int) PercentChange {
	current, previous := consecutiveWindows(now, days)

	currentSpend := decimal.Zero
	previousSpend := decimal.Zero
	for _, tx := range transactions {
		if !isExpense(tx) {
			continue
		}
		switch {
		case current.contains(tx.Date()):
			currentSpend = currentSpend.Add(tx.Amount().Abs())
		case previous.contains(tx.Date()):
			previousSpend = previousSpend.Add(tx.Amount().Abs())
		}
	}

	if previousSpend.IsZero() {
		if currentSpend.IsPositive() {
			return PercentChange{Percent: 100, FromZero: true}
		}
		return PercentChange{Percent: 0, FromZero: true}
	}

	pct := currentSpend.Sub(previousSpend).Div(previousSpend).Mul(decimal.NewFromInt(100))
	return PercentChange{Percent: pct.InexactFloat64()}
}

// CategoryTrends compares each category's spend over the last 30 days with the
// 30 days before. Categories with no spend in either window are left out.
func CategoryTrends(transactions []Transaction, now time.Time) []CategoryTrendSummary {
	return categoryTrends(transactions, now, trendWindowDays)
}

func categoryTrends(transactions []Transaction, now time.Time, days int) []CategoryTrendSummary {
	current, previous := consecutiveWindows(now, days)

	type spend struct {
		current  decimal.Decimal
		previous decimal.Decimal
		count    int
	}
	byCategory := make(map[string]*spend)

	for _, tx := range transactions {
		if !isExpense(tx) {
			continue
		}
		inCurrent := current.contains(tx.Date())
		inPrevious := previous.contains(tx.Date())
		if !inCurrent && !inPrevious {
			continue
		}

		s, ok := byCategory[tx.Category()]
		if !ok {
			s = &spend{current: decimal.Zero, previous: decimal.Zero}
			byCategory[tx.Category()] = s
		}
		if inCurrent {
			s.current = s.current.Add(tx.Amount().Abs())
			s.count++
		} else {
			s.previous = s.previous.Add(tx.Amount().Abs())
		}
	}

	trends := make([]CategoryTrendSummary, 0, len(byCategory))
	for category, s := range byCategory {
		if s.current.IsZero() && s.previous.IsZero() {
			continue
		}

		change := s.current.Sub(s.previous)
		summary := CategoryTrendSummary{
			Category:         category,
			CurrentSpend:     s.current,
			PreviousSpend:    s.previous,
			ChangeAmount:     change,
			TransactionCount: s.count,
		}
		if s.previous.IsZero() {
			summary.FromZero = true
			if s.current.IsPositive() {
				summary.PercentChange = 1
			}
		} else {
			summary.PercentChange = change.Div(s.previous).InexactFloat64()
		}
		trends = append(trends, summary)
	}

	sort.Slice(trends, func(i, j int) bool {
		ci, cj := trends[i].ChangeAmount.Abs(), trends[j].ChangeAmount.Abs()
		if !ci.Equal(cj) {
			return ci.GreaterThan(cj)
		}
		return trends[i].Category < trends[j].Category
	})

	return trends
}

// SpentAmount sums the expenses in the budget's category over the budget's
// lookback window. The category must match exactly.
func SpentAmount(transactions []Transaction, budget Budget, now time.Time) decimal.Decimal {
	days := budget.Period().LookbackDays()

	total := decimal.Zero
	for _, tx := range transactions {
		if !isExpense(tx) || tx.Category() != budget.Category() {
			continue
		}
		if trailing(tx.Date(), now, days) {
			total = total.Add(tx.Amount().Abs())
		}
	}
	return total
}

// MonthlyExpenses sums expenses over the trailing 30 days. The result never
// drops below the policy minimum so coverage ratios stay defined.
func MonthlyExpenses(transactions []Transaction, now time.Time, policy Policy) decimal.Decimal {
	return monthlyExpenses(transactions, now, trendWindowDays, policy.MinimumMonthlyExpenses)
}

func monthlyExpenses(transactions []Transaction, now time.Time, days int, floor float64) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if isExpense(tx) && trailing(tx.Date(), now, days) {
			total = total.Add(tx.Amount().Abs())
		}
	}
	return decimal.Max(total, decimal.NewFromFloat(floor))
}

// EmergencyCoverage divides the savings balance by monthly expenses.
func EmergencyCoverage(accounts []Account, monthlyExpenses decimal.Decimal) Coverage {
	if !monthlyExpenses.IsPositive() {
		return unboundedCoverage()
	}

	savings := decimal.Zero
	for _, account := range accounts {
		if account.Kind() == AccountKindSavings {
			savings = savings.Add(account.Balance())
		}
	}
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return Coverage{Months: savings.Div(monthlyExpenses).InexactFloat64()}
}

// CashFlowWindow splits the trailing window into income and expenses.
func CashFlowWindow(transactions []Transaction, windowDays int, now time.Time) CashFlow {
	flow := CashFlow{Income: decimal.Zero, Expenses: decimal.Zero, Net: decimal.Zero}
	if windowDays <= 0 {
		return flow
	}

	for _, tx := range transactions {
		if !trailing(tx.Date(), now, windowDays) {
			continue
		}
		if tx.Amount().IsPositive() {
			flow.Income = flow.Income.Add(tx.Amount())
		} else {
			flow.Expenses = flow.Expenses.Add(tx.Amount().Abs())
		}
	}
	flow.Net = flow.Income.Sub(flow.Expenses)
	return flow
}
