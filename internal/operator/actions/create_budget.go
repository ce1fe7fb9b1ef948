package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-insights/internal/storage"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

// CreateBudget sets the spending limit for a category, replacing any
// existing budget for it.
type CreateBudget struct {
	Category string
	Amount   decimal.Decimal
	Period   sqlconfig.BudgetPeriod

	ID uuid.UUID
}

func (b *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Budgets.Insert(ctx, &sqlconfig.BudgetCreate{
		Category: b.Category,
		Amount:   b.Amount,
		Period:   b.Period,
	})
	if err != nil {
		return err
	}

	b.ID = id
	return nil
}
