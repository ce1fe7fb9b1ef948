package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/notify"
	"github.com/carson-networks/budget-insights/internal/storage"
)

// ErrSuperseded is returned by a run that a newer run replaced before it
// could publish.
var ErrSuperseded = errors.New("insight run superseded by a newer run")

// InsightService builds insight reports from stored data and keeps the most
// recent one. Starting a run cancels the run in flight, if any.
type InsightService struct {
	storage   *storage.Storage
	generator *analytics.Generator
	publisher notify.Publisher
	now       func() time.Time

	latest analytics.Latest

	mu        sync.Mutex
	cancelRun context.CancelFunc
	runSeq    uint64
	inflight  sync.WaitGroup
}

func NewInsightService(store *storage.Storage, generator *analytics.Generator, publisher notify.Publisher) *InsightService {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &InsightService{
		storage:   store,
		generator: generator,
		publisher: publisher,
		now:       time.Now,
	}
}

// Current returns the latest report, building one first if none exists yet.
func (s *InsightService) Current(ctx context.Context) (*analytics.Report, uint64, error) {
	if report, seq := s.latest.Get(); report != nil {
		return report, seq, nil
	}

	report, seq, err := s.Refresh(ctx)
	if errors.Is(err, ErrSuperseded) {
		if report, seq := s.latest.Get(); report != nil {
			return report, seq, nil
		}
	}
	return report, seq, err
}

// Refresh builds a new report from the current data and publishes it.
func (s *InsightService) Refresh(ctx context.Context) (*analytics.Report, uint64, error) {
	seq := s.latest.Begin()
	runCtx, cancel := s.startRun(ctx, seq)
	defer s.endRun(seq, cancel)

	logData := logrus.WithField("sequence", seq)
	logData.Debug("InsightService.Refresh.Start")

	snap, err := loadSnapshot(runCtx, s.storage, s.now())
	if err != nil {
		return nil, seq, s.runError(ctx, err)
	}

	report, err := s.generator.Report(runCtx, snap)
	if err != nil {
		return nil, seq, s.runError(ctx, err)
	}

	if !s.latest.Publish(seq, report) {
		return nil, seq, ErrSuperseded
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logData.Debug(spew.Sdump(report))
	}
	logData.WithFields(logrus.Fields{
		"insightCount":  len(report.Insights),
		"transactions":  len(snap.Transactions),
		"subscriptions": len(report.Subscriptions),
	}).Info("InsightService.Refresh.Complete")

	if err := s.publisher.PublishInsights(context.WithoutCancel(ctx), seq, report); err != nil {
		logData.WithError(err).Warn("InsightService.Refresh.publish failed")
	}

	return report, seq, nil
}

// RefreshAsync starts a refresh in the background.
func (s *InsightService) RefreshAsync(ctx context.Context) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if _, _, err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			logrus.WithError(err).Error("InsightService.RefreshAsync.Error")
		}
	}()
}

// Wait blocks until every background refresh has returned.
func (s *InsightService) Wait() {
	s.inflight.Wait()
}

func (s *InsightService) startRun(ctx context.Context, seq uint64) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.runSeq {
		// A newer run registered first.
		cancel()
		return runCtx, cancel
	}
	if s.cancelRun != nil {
		s.cancelRun()
	}
	s.cancelRun = cancel
	s.runSeq = seq
	return runCtx, cancel
}

func (s *InsightService) endRun(seq uint64, cancel context.CancelFunc) {
	s.mu.Lock()
	if s.runSeq == seq {
		s.cancelRun = nil
	}
	s.mu.Unlock()
	cancel()
}

// runError reports a cancellation caused by a newer run as ErrSuperseded.
func (s *InsightService) runError(parent context.Context, err error) error {
	if errors.Is(err, context.Canceled) && parent.Err() == nil {
		return ErrSuperseded
	}
	return err
}
