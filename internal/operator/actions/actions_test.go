package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-insights/internal/storage"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

type testTables struct {
	accounts     *sqlconfig.MockIAccountTable
	transactions *sqlconfig.MockITransactionTable
	budgets      *sqlconfig.MockIBudgetTable
}

func newTestWriter(t *testing.T) (*storage.Writer, testTables) {
	t.Helper()
	tables := testTables{
		accounts:     sqlconfig.NewMockIAccountTable(t),
		transactions: sqlconfig.NewMockITransactionTable(t),
		budgets:      sqlconfig.NewMockIBudgetTable(t),
	}
	return storage.NewWriter(nil, tables.accounts, tables.transactions, tables.budgets), tables
}

// -- CreateAccount tests --

func TestCreateAccount_Perform(t *testing.T) {
	writer, tables := newTestWriter(t)
	expectedID := uuid.Must(uuid.NewV4())

	tables.accounts.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *sqlconfig.AccountCreate) bool {
		return c.Name == "Savings" &&
			c.Type == sqlconfig.AccountTypeSavings &&
			c.Balance.Equal(decimal.RequireFromString("500"))
	})).Return(expectedID, nil)

	action := &CreateAccount{
		Name:            "Savings",
		Type:            sqlconfig.AccountTypeSavings,
		Balance:         decimal.RequireFromString("500"),
		StartingBalance: decimal.RequireFromString("500"),
	}

	assert.NoError(t, action.Perform(context.Background(), writer))
	assert.Equal(t, expectedID, action.ID)
}

func TestCreateAccount_InsertError(t *testing.T) {
	writer, tables := newTestWriter(t)
	tables.accounts.EXPECT().Insert(mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("insert failed"))

	action := &CreateAccount{Name: "Savings"}

	assert.EqualError(t, action.Perform(context.Background(), writer), "insert failed")
	assert.Equal(t, uuid.Nil, action.ID)
}

// -- CreateTransaction tests --

func TestCreateTransaction_UpdatesBalance(t *testing.T) {
	writer, tables := newTestWriter(t)
	accountID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())
	txDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tables.accounts.EXPECT().FindByIDForUpdate(mock.Anything, accountID).Return(&sqlconfig.Account{
		ID:      accountID,
		Balance: decimal.RequireFromString("100.00"),
	}, nil)
	tables.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *sqlconfig.TransactionCreate) bool {
		return c.AccountID == accountID &&
			c.Category == "Dining" &&
			c.Merchant == "Cafe" &&
			c.TransactionDate.Equal(txDate)
	})).Return(txID, nil)
	tables.accounts.EXPECT().UpdateBalance(mock.Anything, accountID, mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.RequireFromString("87.50"))
	})).Return(nil)

	action := &CreateTransaction{
		AccountID:       accountID,
		Category:        "Dining",
		Merchant:        "Cafe",
		Amount:          decimal.RequireFromString("-12.50"),
		TransactionName: "Lunch",
		TransactionDate: txDate,
	}

	assert.NoError(t, action.Perform(context.Background(), writer))
	assert.Equal(t, txID, action.ID)
}

func TestCreateTransaction_AccountNotFound(t *testing.T) {
	writer, tables := newTestWriter(t)
	accountID := uuid.Must(uuid.NewV4())

	tables.accounts.EXPECT().FindByIDForUpdate(mock.Anything, accountID).Return(nil, sqlconfig.ErrNotFound)

	action := &CreateTransaction{AccountID: accountID, Amount: decimal.RequireFromString("-1")}
	err := action.Perform(context.Background(), writer)

	assert.ErrorIs(t, err, sqlconfig.ErrNotFound)
	tables.transactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateTransaction_InsertError(t *testing.T) {
	writer, tables := newTestWriter(t)
	accountID := uuid.Must(uuid.NewV4())

	tables.accounts.EXPECT().FindByIDForUpdate(mock.Anything, accountID).
		Return(&sqlconfig.Account{ID: accountID}, nil)
	tables.transactions.EXPECT().Insert(mock.Anything, mock.Anything).
		Return(uuid.Nil, errors.New("connection refused"))

	action := &CreateTransaction{AccountID: accountID, Amount: decimal.RequireFromString("-1")}

	assert.EqualError(t, action.Perform(context.Background(), writer), "connection refused")
	tables.accounts.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
}

// -- CreateBudget tests --

func TestCreateBudget_Perform(t *testing.T) {
	writer, tables := newTestWriter(t)
	expectedID := uuid.Must(uuid.NewV4())

	tables.budgets.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *sqlconfig.BudgetCreate) bool {
		return c.Category == "Dining" &&
			c.Amount.Equal(decimal.RequireFromString("200")) &&
			c.Period == sqlconfig.BudgetPeriodMonthly
	})).Return(expectedID, nil)

	action := &CreateBudget{Category: "Dining", Amount: decimal.RequireFromString("200")}

	assert.NoError(t, action.Perform(context.Background(), writer))
	assert.Equal(t, expectedID, action.ID)
}
