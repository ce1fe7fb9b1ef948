package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/storage"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

// snapshotLookbackDays covers a yearly budget plus the previous trend window.
const snapshotLookbackDays = 400

type snapshotTransaction struct {
	row *sqlconfig.Transaction
	loc *time.Location
}

func (t snapshotTransaction) Amount() decimal.Decimal { return t.row.Amount }
func (t snapshotTransaction) Date() time.Time         { return t.row.TransactionDate.In(t.loc) }
func (t snapshotTransaction) Category() string        { return t.row.Category }
func (t snapshotTransaction) Merchant() string        { return t.row.Merchant }

type snapshotAccount struct {
	row *sqlconfig.Account
}

func (a snapshotAccount) Kind() analytics.AccountKind { return accountKind(a.row.Type) }
func (a snapshotAccount) Balance() decimal.Decimal    { return a.row.Balance }

type snapshotBudget struct {
	row *sqlconfig.Budget
}

func (b snapshotBudget) Category() string               { return b.row.Category }
func (b snapshotBudget) Limit() decimal.Decimal         { return b.row.Amount }
func (b snapshotBudget) Period() analytics.BudgetPeriod { return analyticsPeriod(b.row.Period) }

// loadSnapshot reads every account and budget plus recent transactions, all
// as of now.
func loadSnapshot(ctx context.Context, store *storage.Storage, now time.Time) (analytics.Snapshot, error) {
	var (
		accounts     []*sqlconfig.Account
		budgets      []*sqlconfig.Budget
		transactions []*sqlconfig.Transaction
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		accounts, err = store.Accounts.List(egCtx, nil)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		budgets, err = store.Budgets.List(egCtx)
		if err != nil {
			return fmt.Errorf("list budgets: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		since := now.AddDate(0, 0, -snapshotLookbackDays)
		var err error
		transactions, err = store.Transactions.List(egCtx, &sqlconfig.TransactionFilter{Since: &since})
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return analytics.Snapshot{}, err
	}

	snap := analytics.Snapshot{
		Transactions: make([]analytics.Transaction, len(transactions)),
		Accounts:     make([]analytics.Account, len(accounts)),
		Budgets:      make([]analytics.Budget, len(budgets)),
		Now:          now,
	}
	for i, row := range transactions {
		snap.Transactions[i] = snapshotTransaction{row: row, loc: now.Location()}
	}
	for i, row := range accounts {
		snap.Accounts[i] = snapshotAccount{row: row}
	}
	for i, row := range budgets {
		snap.Budgets[i] = snapshotBudget{row: row}
	}
	return snap, nil
}
