package account

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

type mockAccountCreator struct {
	mock.Mock
}

func (m *mockAccountCreator) CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc accountCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(svc).Register(api)
	return api
}

// -- parseCreateAccountInput unit tests --

func TestParseCreateAccountInput_Defaults(t *testing.T) {
	account, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{
		Name: "Checking",
		Type: 0,
	}})

	assert.NoError(t, err)
	assert.True(t, account.StartingBalance.IsZero())
	assert.True(t, account.Balance.IsZero())
	assert.Equal(t, service.AccountTypeChecking, account.Type)
}

func TestParseCreateAccountInput_BalanceDefaultsToStartingBalance(t *testing.T) {
	account, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{
		Name:            "Savings",
		Type:            1,
		StartingBalance: "250.75",
	}})

	assert.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("250.75")))
	assert.Equal(t, service.AccountTypeSavings, account.Type)
}

func TestParseCreateAccountInput_InvalidBalance(t *testing.T) {
	_, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{
		Name:    "Checking",
		Balance: "lots",
	}})
	assert.Error(t, err)
}

// -- HTTP tests --

func TestHTTP_CreateAccount_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockAccountCreator)
	mockSvc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a service.Account) bool {
		return a.Name == "Savings" &&
			a.Type == service.AccountTypeSavings &&
			a.Balance.Equal(decimal.RequireFromString("500"))
	})).Return(id, nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/account", CreateAccountBody{
		Name:            "Savings",
		Type:            1,
		StartingBalance: "500",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateAccountResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_TypeOutOfRange(t *testing.T) {
	mockSvc := new(mockAccountCreator)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/account", CreateAccountBody{
		Name: "Checking",
		Type: 9,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_InvalidStartingBalance(t *testing.T) {
	mockSvc := new(mockAccountCreator)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/account", CreateAccountBody{
		Name:            "Checking",
		StartingBalance: "not-a-decimal",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_ServiceError(t *testing.T) {
	mockSvc := new(mockAccountCreator)
	mockSvc.On("CreateAccount", mock.Anything, mock.Anything).
		Return(uuid.Nil, errors.New("database unavailable"))

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/account", CreateAccountBody{Name: "Checking"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
