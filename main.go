package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-insights/api"
	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/config"
	"github.com/carson-networks/budget-insights/internal/logging"
	"github.com/carson-networks/budget-insights/internal/notify"
	"github.com/carson-networks/budget-insights/internal/operator"
	"github.com/carson-networks/budget-insights/internal/operator/actions"
	"github.com/carson-networks/budget-insights/internal/service"
	"github.com/carson-networks/budget-insights/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := logging.SetupLogging()
	logrus.SetFormatter(logger.Formatter)
	logger.Info("budget-insights starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, envConfig.Log.Level)
	logging.SetLevel(logrus.StandardLogger(), envConfig.Log.Level)

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	if _, _, err := storage.RunMigrations(dbStorage.DB); err != nil {
		logger.WithError(err).Fatal("storage.RunMigrations")
		return
	}

	var publisher notify.Publisher = notify.Nop{}
	if envConfig.AMQP.URL != "" {
		client, err := notify.NewClient(envConfig.AMQP.URL, envConfig.AMQP.Exchange, envConfig.AMQP.RoutingKey)
		if err != nil {
			logger.WithError(err).Fatal("notify.NewClient")
			return
		}
		publisher = client
	} else {
		logger.Info("AMQP disabled, insight reports will not be published")
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.Operator.Workers)
	generator := analytics.NewGenerator(envConfig.Analytics)
	svc := service.NewService(dbStorage, delegator, generator, publisher)

	// Request contexts end with the request, so background refreshes hang off
	// the process context instead.
	delegator.OnCommit(func(_ context.Context, _ actions.IAction) {
		svc.Insight.RefreshAsync(ctx)
	})
	delegator.Start()

	httpRest := &api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTP.Port,
		Service: svc,
		DB:      dbStorage.DB,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		httpRest.Serve()
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
	logger.Info("budget-insights stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpRest.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HttpServer.Shutdown")
	}
	<-done

	delegator.Stop()
	stop()
	svc.Insight.Wait()
}
