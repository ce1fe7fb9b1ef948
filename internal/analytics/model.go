package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is anything the analytics can read a money movement from.
// Positive amounts are income, negative amounts are expenses.
type Transaction interface {
	Amount() decimal.Decimal
	Date() time.Time
	Category() string
	// Merchant returns an empty string when the transaction has no merchant.
	Merchant() string
}

// Account is a balance snapshot taken at analysis time.
type Account interface {
	Kind() AccountKind
	Balance() decimal.Decimal
}

// Budget is a spending limit for one category over a period.
type Budget interface {
	Category() string
	Limit() decimal.Decimal
	Period() BudgetPeriod
}

type AccountKind int8

const (
	AccountKindChecking AccountKind = iota
	AccountKindSavings
	AccountKindCredit
	AccountKindInvestment
	AccountKindOther
)

func (k AccountKind) String() string {
	switch k {
	case AccountKindChecking:
		return "checking"
	case AccountKindSavings:
		return "savings"
	case AccountKindCredit:
		return "credit"
	case AccountKindInvestment:
		return "investment"
	default:
		return "other"
	}
}

type BudgetPeriod int8

const (
	BudgetPeriodMonthly BudgetPeriod = iota
	BudgetPeriodQuarterly
	BudgetPeriodYearly
)

// LookbackDays is the trailing window a budget of this period is measured over.
func (p BudgetPeriod) LookbackDays() int {
	switch p {
	case BudgetPeriodQuarterly:
		return 90
	case BudgetPeriodYearly:
		return 365
	default:
		return 30
	}
}

func (p BudgetPeriod) String() string {
	switch p {
	case BudgetPeriodQuarterly:
		return "quarterly"
	case BudgetPeriodYearly:
		return "yearly"
	default:
		return "monthly"
	}
}

// PercentChange is a percentage delta between two windows. FromZero is set
// when the previous window had no spend, in which case Percent is 100 if the
// current window has spend and 0 otherwise.
type PercentChange struct {
	Percent  float64
	FromZero bool
}

// Coverage is how many months of expenses the savings balance covers.
// Unbounded is set (with Months = +Inf) when there are no expenses to cover.
type Coverage struct {
	Months    float64
	Unbounded bool
}

func unboundedCoverage() Coverage {
	return Coverage{Months: math.Inf(1), Unbounded: true}
}

// CashFlow sums a trailing window. Expenses is a magnitude, Net is
// Income minus Expenses.
type CashFlow struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// CategoryTrendSummary compares a category's spend between the current and
// previous windows. PercentChange is a ratio (0.25 means +25%); when
// PreviousSpend is zero it is 1 if there is current spend, else 0, and
// FromZero is set.
type CategoryTrendSummary struct {
	Category         string
	CurrentSpend     decimal.Decimal
	PreviousSpend    decimal.Decimal
	PercentChange    float64
	ChangeAmount     decimal.Decimal
	TransactionCount int
	FromZero         bool
}

// SubscriptionSummary describes a group of expenses judged to be recurring.
type SubscriptionSummary struct {
	Identifier          string
	Name                string
	AverageAmount       decimal.Decimal
	LastUsed            *time.Time
	Occurrences         int
	AverageIntervalDays float64
}

// Snapshot is the immutable input to one analysis run.
type Snapshot struct {
	Transactions []Transaction
	Accounts     []Account
	Budgets      []Budget
	Now          time.Time
}
