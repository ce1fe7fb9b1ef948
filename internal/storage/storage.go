package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-insights/internal/config"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

var ErrNotFound = sqlconfig.ErrNotFound

// Storage reads straight from the database. Writes that must be atomic go
// through Write.
type Storage struct {
	DB           *sql.DB
	Accounts     sqlconfig.IAccountTable
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable

	bobDB bob.DB
}

func NewStorage(cfg *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:           db,
		Accounts:     sqlconfig.NewAccountsTable(bobDB),
		Transactions: sqlconfig.NewTransactionsTable(bobDB),
		Budgets:      sqlconfig.NewBudgetsTable(bobDB),
		bobDB:        bobDB,
	}
}

// Write opens a database transaction and returns a Writer bound to it. The
// caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx,
		sqlconfig.NewAccountsTable(tx),
		sqlconfig.NewTransactionsTable(tx),
		sqlconfig.NewBudgetsTable(tx),
	), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
