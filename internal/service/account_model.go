package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

// AccountType represents an account type in the service layer.
type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeCredit
	AccountTypeInvestment
	AccountTypeOther
)

// Account represents an account in the service layer.
type Account struct {
	ID              uuid.UUID
	Name            string
	Type            AccountType
	SubType         string
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
	CreatedAt       time.Time
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

func accountTypeToStorage(t AccountType) sqlconfig.AccountType {
	return sqlconfig.AccountType(t)
}

func accountTypeFromStorage(t sqlconfig.AccountType) AccountType {
	return AccountType(t)
}

func accountKind(t sqlconfig.AccountType) analytics.AccountKind {
	switch t {
	case sqlconfig.AccountTypeChecking:
		return analytics.AccountKindChecking
	case sqlconfig.AccountTypeSavings:
		return analytics.AccountKindSavings
	case sqlconfig.AccountTypeCredit:
		return analytics.AccountKindCredit
	case sqlconfig.AccountTypeInvestment:
		return analytics.AccountKindInvestment
	default:
		return analytics.AccountKindOther
	}
}

func accountFromStorage(row *sqlconfig.Account) Account {
	return Account{
		ID:              row.ID,
		Name:            row.Name,
		Type:            accountTypeFromStorage(row.Type),
		SubType:         row.SubType,
		Balance:         row.Balance,
		StartingBalance: row.StartingBalance,
		CreatedAt:       row.CreatedAt,
	}
}
