package service

import (
	"context"

	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/notify"
	"github.com/carson-networks/budget-insights/internal/operator/actions"
	"github.com/carson-networks/budget-insights/internal/storage"
)

// actionProcessor runs a write action in its own storage transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Budget      *BudgetService
	Insight     *InsightService
}

// NewService creates a new Service. Reads go straight to storage, writes go
// through the processor.
func NewService(store *storage.Storage, processor actionProcessor, generator *analytics.Generator, publisher notify.Publisher) *Service {
	return &Service{
		Transaction: NewTransactionService(store, processor),
		Account:     NewAccountService(store, processor),
		Budget:      NewBudgetService(store, processor),
		Insight:     NewInsightService(store, generator, publisher),
	}
}
