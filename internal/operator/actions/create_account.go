package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-insights/internal/storage"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

type CreateAccount struct {
	Name            string
	Type            sqlconfig.AccountType
	SubType         string
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal

	// ID is set once Perform succeeds.
	ID uuid.UUID
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Accounts.Insert(ctx, &sqlconfig.AccountCreate{
		Name:            c.Name,
		Type:            c.Type,
		SubType:         c.SubType,
		Balance:         c.Balance,
		StartingBalance: c.StartingBalance,
	})
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}
