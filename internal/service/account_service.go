package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-insights/internal/operator/actions"
	"github.com/carson-networks/budget-insights/internal/storage"
	"github.com/carson-networks/budget-insights/internal/storage/sqlconfig"
)

const defaultAccountLimit = 20

// AccountService handles account business logic.
type AccountService struct {
	storage   *storage.Storage
	processor actionProcessor
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, processor actionProcessor) *AccountService {
	return &AccountService{storage: store, processor: processor}
}

// CreateAccount creates a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, account Account) (uuid.UUID, error) {
	action := &actions.CreateAccount{
		Name:            account.Name,
		Type:            accountTypeToStorage(account.Type),
		SubType:         account.SubType,
		Balance:         account.Balance,
		StartingBalance: account.StartingBalance,
	}

	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account := accountFromStorage(row)
	return &account, nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &sqlconfig.AccountFilter{
		Limit:  limit,
		Offset: offset,
	}

	var nextCursor *AccountCursor
	accounts, err := s.storage.Accounts.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(accounts) == 0 {
		return nil, nil, nil
	}

	if len(accounts) > limit {
		accounts = accounts[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedAccounts := make([]Account, len(accounts))
	for i, account := range accounts {
		convertedAccounts[i] = accountFromStorage(account)
	}

	return convertedAccounts, nextCursor, nil
}
