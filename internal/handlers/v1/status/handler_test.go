package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/budget-insights/internal/logging"
)

type fakePinger struct {
	err   error
	calls int
}

func (p *fakePinger) PingContext(context.Context) error {
	p.calls++
	return p.err
}

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging()
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	statusHandler := NewHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)
}

func TestHandler_BadMethod(t *testing.T) {
	statusHandler := NewHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
}

func TestHandler_DatabaseHealthy(t *testing.T) {
	db := &fakePinger{}
	statusHandler := NewHandler(db)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, httptest.NewRequest(http.MethodGet, "/status", nil), createTestLogData())

	assert.NoError(t, err)
	assert.Equal(t, 1, db.calls)
	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_DatabaseDown(t *testing.T) {
	statusHandler := NewHandler(&fakePinger{err: errors.New("connection refused")})
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, httptest.NewRequest(http.MethodGet, "/status", nil), createTestLogData())

	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, http.StatusServiceUnavailable, w.Result().StatusCode)
}
