package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-insights/internal/logging"
	"github.com/carson-networks/budget-insights/internal/service"
)

type ListBudgetsResponseBody struct {
	Budgets []Budget `json:"budgets" doc:"Every budget, ordered by category"`
}

type ListBudgetsOutput struct {
	Body ListBudgetsResponseBody
}

type budgetLister interface {
	ListBudgets(ctx context.Context) ([]service.Budget, error)
}

// ListBudgetsHandler handles GET /v1/budgets.
type ListBudgetsHandler struct {
	BudgetService budgetLister
}

func NewListBudgetsHandler(svc budgetLister) *ListBudgetsHandler {
	return &ListBudgetsHandler{BudgetService: svc}
}

func (h *ListBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "List budgets",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *ListBudgetsHandler) handle(ctx context.Context, _ *struct{}) (*ListBudgetsOutput, error) {
	logData := logging.GetLogData(ctx)

	budgets, err := h.BudgetService.ListBudgets(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list budgets", err)
	}

	if logData != nil {
		logData.AddData("budgetCount", len(budgets))
	}

	resp := ListBudgetsResponseBody{Budgets: make([]Budget, len(budgets))}
	for i, b := range budgets {
		resp.Budgets[i] = Budget{
			ID:        b.ID.String(),
			Category:  b.Category,
			Amount:    b.Amount.String(),
			Period:    int(b.Period),
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		}
	}

	return &ListBudgetsOutput{Body: resp}, nil
}
