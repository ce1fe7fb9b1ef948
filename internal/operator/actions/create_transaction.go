package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-insights/internal/storage"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

// CreateTransaction records a transaction and applies its amount to the
// account balance. Negative amounts are expenses.
type CreateTransaction struct {
	AccountID       uuid.UUID
	Category        string
	Merchant        string
	Amount          decimal.Decimal
	TransactionName string
	TransactionDate time.Time

	// ID is set once Perform succeeds.
	ID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Accounts.FindByIDForUpdate(ctx, t.AccountID)
	if err != nil {
		return fmt.Errorf("lock account %s: %w", t.AccountID, err)
	}

	id, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		AccountID:       t.AccountID,
		Category:        t.Category,
		Merchant:        t.Merchant,
		Amount:          t.Amount,
		TransactionName: t.TransactionName,
		TransactionDate: t.TransactionDate,
	})
	if err != nil {
		return err
	}

	newBalance := account.Balance.Add(t.Amount)
	if err := writer.Accounts.UpdateBalance(ctx, t.AccountID, newBalance); err != nil {
		return err
	}

	t.ID = id
	return nil
}
