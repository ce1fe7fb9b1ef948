package budget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-insights/internal/service"
)

type mockBudgetCreator struct {
	mock.Mock
}

func (m *mockBudgetCreator) CreateBudget(ctx context.Context, budget service.Budget) (uuid.UUID, error) {
	args := m.Called(ctx, budget)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc budgetCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateBudgetHandler(svc).Register(api)
	return api
}

func TestParseCreateBudgetInput_DefaultsToMonthly(t *testing.T) {
	budget, err := parseCreateBudgetInput(&CreateBudgetInput{Body: CreateBudgetBody{
		Category: " Dining ",
		Amount:   "400.00",
	}})

	assert.NoError(t, err)
	assert.Equal(t, "Dining", budget.Category)
	assert.True(t, budget.Amount.Equal(decimal.RequireFromString("400")))
	assert.Equal(t, service.BudgetPeriodMonthly, budget.Period)
}

func TestParseCreateBudgetInput_Invalid(t *testing.T) {
	cases := map[string]CreateBudgetBody{
		"blank category":  {Category: "   ", Amount: "10"},
		"bad amount":      {Category: "Dining", Amount: "ten"},
		"zero amount":     {Category: "Dining", Amount: "0"},
		"negative amount": {Category: "Dining", Amount: "-5"},
		"bad period":      {Category: "Dining", Amount: "10", Period: 3},
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCreateBudgetInput(&CreateBudgetInput{Body: body})
			assert.Error(t, err)
		})
	}
}

func TestHTTP_CreateBudget_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBudgetCreator)
	mockSvc.On("CreateBudget", mock.Anything, mock.MatchedBy(func(b service.Budget) bool {
		return b.Category == "Travel" &&
			b.Period == service.BudgetPeriodYearly &&
			b.Amount.Equal(decimal.RequireFromString("1200"))
	})).Return(id, nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/budget", CreateBudgetBody{
		Category: "Travel",
		Amount:   "1200",
		Period:   2,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateBudgetResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateBudget_PeriodOutOfRange(t *testing.T) {
	mockSvc := new(mockBudgetCreator)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/budget", map[string]any{
		"category": "Travel",
		"amount":   "100",
		"period":   7,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateBudget")
}

func TestHTTP_CreateBudget_ServiceError(t *testing.T) {
	mockSvc := new(mockBudgetCreator)
	mockSvc.On("CreateBudget", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("queue closed"))

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/budget", CreateBudgetBody{Category: "Dining", Amount: "50"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
