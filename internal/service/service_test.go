package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-insights/internal/operator/actions"
	"github.com/carson-networks/budget-insights/internal/storage"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type testTables struct {
	accounts     *sqlconfig.MockIAccountTable
	transactions *sqlconfig.MockITransactionTable
	budgets      *sqlconfig.MockIBudgetTable
	processor    *mockProcessor
}

func newTestStorage(t *testing.T) (*storage.Storage, testTables) {
	t.Helper()
	tables := testTables{
		accounts:     sqlconfig.NewMockIAccountTable(t),
		transactions: sqlconfig.NewMockITransactionTable(t),
		budgets:      sqlconfig.NewMockIBudgetTable(t),
		processor:    new(mockProcessor),
	}
	t.Cleanup(func() { tables.processor.AssertExpectations(t) })
	store := &storage.Storage{
		Accounts:     tables.accounts,
		Transactions: tables.transactions,
		Budgets:      tables.budgets,
	}
	return store, tables
}
