package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const budgetsTableName = "budgets"

var _ IBudgetTable = (*BudgetsTable)(nil)

type BudgetsTable struct {
	exec bob.Executor
}

func NewBudgetsTable(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

// Insert creates a budget, replacing the limit and period of an existing
// budget for the same category.
func (t *BudgetsTable) Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(budgetsTableName, "category", "amount", "period"),
		im.Values(psql.Arg(create.Category, create.Amount, int16(create.Period))),
		im.OnConflict("category").DoUpdate(
			im.SetExcluded("amount", "period"),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// List returns every budget ordered by category.
func (t *BudgetsTable) List(ctx context.Context) ([]*Budget, error) {
	query := psql.Select(
		sm.Columns("id", "category", "amount", "period", "created_at"),
		sm.From(budgetsTableName),
		sm.OrderBy(psql.Quote("category")).Asc(),
	)
	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[Budget]())
	if err != nil {
		return nil, err
	}
	result := make([]*Budget, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
