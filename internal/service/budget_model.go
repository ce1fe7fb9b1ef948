package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

type BudgetPeriod int8

const (
	BudgetPeriodMonthly BudgetPeriod = iota
	BudgetPeriodQuarterly
	BudgetPeriodYearly
)

// Budget is a spending limit for one category.
type Budget struct {
	ID        uuid.UUID
	Category  string
	Amount    decimal.Decimal
	Period    BudgetPeriod
	CreatedAt time.Time
}

func budgetPeriodFromStorage(p sqlconfig.BudgetPeriod) BudgetPeriod {
	return BudgetPeriod(p)
}

func budgetPeriodToStorage(p BudgetPeriod) sqlconfig.BudgetPeriod {
	return sqlconfig.BudgetPeriod(p)
}

func analyticsPeriod(p sqlconfig.BudgetPeriod) analytics.BudgetPeriod {
	switch p {
	case sqlconfig.BudgetPeriodQuarterly:
		return analytics.BudgetPeriodQuarterly
	case sqlconfig.BudgetPeriodYearly:
		return analytics.BudgetPeriodYearly
	default:
		return analytics.BudgetPeriodMonthly
	}
}
