package budget

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-insights/internal/logging"
	"github.com/carson-networks/budget-insights/internal/service"
)

// CreateBudgetInput is the Huma input for setting a budget.
type CreateBudgetInput struct {
	Body CreateBudgetBody
}

// CreateBudgetBody is the request body fields for setting a budget.
type CreateBudgetBody struct {
	Category string `json:"category" minLength:"1" doc:"Category the limit applies to"`
	Amount   string `json:"amount" doc:"Spending limit per period (e.g. '400.00')"`
	Period   int    `json:"period,omitempty" minimum:"0" maximum:"2" doc:"Budget period: 0=Monthly, 1=Quarterly, 2=Yearly"`
}

// CreateBudgetResponse is the response body for setting a budget.
type CreateBudgetResponse struct {
	ID string `json:"id" doc:"Budget UUID"`
}

// CreateBudgetOutput is the response for setting a budget.
type CreateBudgetOutput struct {
	Status int
	Body   CreateBudgetResponse
}

type budgetCreator interface {
	CreateBudget(ctx context.Context, budget service.Budget) (uuid.UUID, error)
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

// Register registers the create budget endpoint with the Huma API.
func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Set a budget",
		Description: "Sets the spending limit for a category. An existing budget for the category is replaced.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func parseCreateBudgetInput(input *CreateBudgetInput) (service.Budget, error) {
	category := strings.TrimSpace(input.Body.Category)
	if category == "" {
		return service.Budget{}, huma.NewError(http.StatusBadRequest, "category cannot be blank")
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.Budget{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	if !amount.IsPositive() {
		return service.Budget{}, huma.NewError(http.StatusBadRequest, "amount must be positive")
	}

	if input.Body.Period < 0 || input.Body.Period > 2 {
		return service.Budget{}, huma.NewError(http.StatusBadRequest, "period must be 0-2")
	}

	return service.Budget{
		Category: category,
		Amount:   amount,
		Period:   service.BudgetPeriod(input.Body.Period),
	}, nil
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	logData := logging.GetLogData(ctx)

	budget, err := parseCreateBudgetInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createBudgetMs")
	}
	id, err := h.BudgetService.CreateBudget(ctx, budget)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to set budget", err)
	}

	if logData != nil {
		logData.AddData("budgetID", id.String())
	}

	return &CreateBudgetOutput{
		Status: http.StatusCreated,
		Body:   CreateBudgetResponse{ID: id.String()},
	}, nil
}
