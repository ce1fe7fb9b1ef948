package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-insights/internal/handlers/v1/account"
	"github.com/carson-networks/budget-insights/internal/handlers/v1/budget"
	"github.com/carson-networks/budget-insights/internal/handlers/v1/insight"
	"github.com/carson-networks/budget-insights/internal/handlers/v1/status"
	"github.com/carson-networks/budget-insights/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-insights/internal/logging"
	"github.com/carson-networks/budget-insights/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	DB      status.Pinger

	server *http.Server
}

// Routes builds the HTTP mux: /status plus the versioned Huma API.
func (r *Rest) Routes() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.DB)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Budget Insights API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	account.NewCreateAccountHandler(r.Service.Account).Register(api)
	account.NewListAccountsHandler(r.Service.Account).Register(api)
	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	budget.NewCreateBudgetHandler(r.Service.Budget).Register(api)
	budget.NewListBudgetsHandler(r.Service.Budget).Register(api)
	insight.NewGetInsightsHandler(r.Service.Insight).Register(api)
	insight.NewRefreshInsightsHandler(r.Service.Insight).Register(api)

	return mux
}

// Serve blocks until the server stops.
func (r *Rest) Serve() {
	r.server = &http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := r.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

func (r *Rest) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
