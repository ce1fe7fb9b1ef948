package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type BudgetPeriod int8

const (
	BudgetPeriodMonthly BudgetPeriod = iota
	BudgetPeriodQuarterly
	BudgetPeriodYearly
)

// Budget represents a budget record.
type Budget struct {
	ID        uuid.UUID       `db:"id"`
	Category  string          `db:"category"`
	Amount    decimal.Decimal `db:"amount"`
	Period    BudgetPeriod    `db:"period"`
	CreatedAt time.Time       `db:"created_at"`
}

// BudgetCreate is the input for creating a new budget.
type BudgetCreate struct {
	Category string
	Amount   decimal.Decimal
	Period   BudgetPeriod
}

// IBudgetTable defines the interface for budget storage operations.
type IBudgetTable interface {
	Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error)
	List(ctx context.Context) ([]*Budget, error)
}
