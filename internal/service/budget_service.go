package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-insights/internal/operator/actions"
	"github.com/carson-networks/budget-insights/internal/storage"
)

// BudgetService handles budget business logic.
type BudgetService struct {
	storage   *storage.Storage
	processor actionProcessor
}

func NewBudgetService(store *storage.Storage, processor actionProcessor) *BudgetService {
	return &BudgetService{storage: store, processor: processor}
}

// CreateBudget sets the budget for a category, replacing any existing one.
func (s *BudgetService) CreateBudget(ctx context.Context, budget Budget) (uuid.UUID, error) {
	action := &actions.CreateBudget{
		Category: budget.Category,
		Amount:   budget.Amount,
		Period:   budgetPeriodToStorage(budget.Period),
	}

	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// ListBudgets returns every budget ordered by category.
func (s *BudgetService) ListBudgets(ctx context.Context) ([]Budget, error) {
	rows, err := s.storage.Budgets.List(ctx)
	if err != nil {
		return nil, err
	}

	budgets := make([]Budget, len(rows))
	for i, row := range rows {
		budgets[i] = Budget{
			ID:        row.ID,
			Category:  row.Category,
			Amount:    row.Amount,
			Period:    budgetPeriodFromStorage(row.Period),
			CreatedAt: row.CreatedAt,
		}
	}
	return budgets, nil
}
