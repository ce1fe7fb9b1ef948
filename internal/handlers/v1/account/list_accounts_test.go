package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-insights/internal/service"
)

type mockAccountLister struct {
	mock.Mock
}

func (m *mockAccountLister) ListAccounts(ctx context.Context, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error) {
	args := m.Called(ctx, cursor)
	accounts, _ := args.Get(0).([]service.Account)
	next, _ := args.Get(1).(*service.AccountCursor)
	return accounts, next, args.Error(2)
}

func newListTestAPI(t *testing.T, svc accountLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListAccountsHandler(svc).Register(api)
	return api
}

func TestHTTP_ListAccounts_FirstPage(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockSvc := new(mockAccountLister)
	mockSvc.On("ListAccounts", mock.Anything, (*service.AccountCursor)(nil)).Return([]service.Account{{
		ID:              id,
		Name:            "Checking",
		Type:            service.AccountTypeChecking,
		Balance:         decimal.RequireFromString("10.50"),
		StartingBalance: decimal.RequireFromString("0"),
		CreatedAt:       createdAt,
	}}, &service.AccountCursor{Position: 20, Limit: 20}, nil)

	resp := newListTestAPI(t, mockSvc).Get("/v1/accounts")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, id.String(), body.Accounts[0].ID)
	assert.Equal(t, "10.5", body.Accounts[0].Balance)
	assert.Equal(t, "2025-06-01T12:00:00Z", body.Accounts[0].CreatedAt)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 20, body.NextCursor.Position)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListAccounts_WithPaging(t *testing.T) {
	mockSvc := new(mockAccountLister)
	mockSvc.On("ListAccounts", mock.Anything, &service.AccountCursor{Position: 40, Limit: 10}).
		Return(nil, nil, nil)

	resp := newListTestAPI(t, mockSvc).Get("/v1/accounts?position=40&limit=10")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Accounts)
	assert.Nil(t, body.NextCursor)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListAccounts_LimitTooLarge(t *testing.T) {
	mockSvc := new(mockAccountLister)

	resp := newListTestAPI(t, mockSvc).Get("/v1/accounts?limit=500")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListAccounts")
}

func TestHTTP_ListAccounts_ServiceError(t *testing.T) {
	mockSvc := new(mockAccountLister)
	mockSvc.On("ListAccounts", mock.Anything, mock.Anything).Return(nil, nil, errors.New("database unavailable"))

	resp := newListTestAPI(t, mockSvc).Get("/v1/accounts")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
