package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-insights/internal/operator/actions"
	"github.com/carson-networks/budget-insights/internal/storage"
)

// WriteSource opens the storage transaction an action runs in.
type WriteSource interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// CommitHook runs after an action's transaction has committed.
type CommitHook func(ctx context.Context, action actions.IAction)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage WriteSource
	queue   chan ActionItem
	hooks   []CommitHook
}

func NewOperator(s WriteSource, queue chan ActionItem, hooks []CommitHook) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		hooks:   hooks,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(item.ctx); rbErr != nil {
			logrus.WithError(rbErr).Warn("Operator.processItem.rollback failed")
		}
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(item.ctx); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}

	for _, hook := range o.hooks {
		hook(context.WithoutCancel(item.ctx), item.action)
	}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
