package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeCredit
	AccountTypeInvestment
	AccountTypeOther
)

// Account represents an account record.
type Account struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Type            AccountType     `db:"type"`
	SubType         string          `db:"sub_type"`
	Balance         decimal.Decimal `db:"balance"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	CreatedAt       time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	Name            string
	Type            AccountType
	SubType         string
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
