package actions

import (
	"context"

	"github.com/carson-networks/budget-insights/internal/storage"
)

// IAction is a unit of work run inside a single storage transaction.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
