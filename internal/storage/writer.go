package storage

import (
	"context"

	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

// Committer ends a database transaction.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes the tables bound to a single database transaction.
type Writer struct {
	tx           Committer
	Accounts     sqlconfig.IAccountTable
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable
}

func NewWriter(
	tx Committer,
	accounts sqlconfig.IAccountTable,
	transactions sqlconfig.ITransactionTable,
	budgets sqlconfig.IBudgetTable,
) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     accounts,
		Transactions: transactions,
		Budgets:      budgets,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
