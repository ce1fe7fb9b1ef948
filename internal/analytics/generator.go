package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Report is everything one analysis run produces for rendering.
type Report struct {
	GeneratedAt    time.Time
	Insights       []Insight
	CategoryTrends []CategoryTrendSummary
	Subscriptions  []SubscriptionSummary
	Unused         []SubscriptionSummary
	Velocity       PercentChange
	Coverage       Coverage
	CashFlow       CashFlow
}

type analyzer func(Snapshot) []Insight

// Generator turns a snapshot into a prioritized list of insights.
type Generator struct {
	policy Policy
}

func NewGenerator(policy Policy) *Generator {
	return &Generator{policy: policy}
}

func (g *Generator) Policy() Policy {
	return g.policy
}

// Generate runs every analyzer against the snapshot and returns their
// combined output, deduplicated and ordered by priority then impact.
// The only error returned is the context's.
func (g *Generator) Generate(ctx context.Context, snap Snapshot) ([]Insight, error) {
	analyzers := []analyzer{
		g.AnalyzeSpendingPatterns,
		g.AnalyzeSavingsOpportunities,
		g.AnalyzeBudgetPerformance,
		g.AssessRisk,
		g.Predict,
	}

	results := make([][]Insight, len(analyzers))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, analyze := range analyzers {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = analyze(snap)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var combined []Insight
	for _, r := range results {
		combined = append(combined, r...)
	}
	return rank(combined), nil
}

// Report builds the full analysis output for a snapshot.
func (g *Generator) Report(ctx context.Context, snap Snapshot) (*Report, error) {
	insights, err := g.Generate(ctx, snap)
	if err != nil {
		return nil, err
	}

	subscriptions := DetectSubscriptions(snap.Transactions, g.policy)
	monthly := monthlyExpenses(snap.Transactions, snap.Now, g.policy.WindowDays, g.policy.MinimumMonthlyExpenses)

	return &Report{
		GeneratedAt:    snap.Now,
		Insights:       insights,
		CategoryTrends: categoryTrends(snap.Transactions, snap.Now, g.policy.WindowDays),
		Subscriptions:  subscriptions,
		Unused:         UnusedSubscriptions(subscriptions, snap.Now, g.policy),
		Velocity:       spendingVelocity(snap.Transactions, snap.Now, g.policy.WindowDays),
		Coverage:       EmergencyCoverage(snap.Accounts, monthly),
		CashFlow:       CashFlowWindow(snap.Transactions, g.policy.WindowDays, snap.Now),
	}, nil
}

func rank(insights []Insight) []Insight {
	type key struct {
		t     InsightType
		title string
	}
	seen := make(map[key]struct{}, len(insights))
	out := make([]Insight, 0, len(insights))
	for _, in := range insights {
		k := key{in.Type, in.Title}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, in)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ImpactScore > out[j].ImpactScore
	})
	return out
}

// AnalyzeSpendingPatterns flags accelerating overall spend and categories
// whose spend jumped since the previous window.
func (g *Generator) AnalyzeSpendingPatterns(snap Snapshot) []Insight {
	var insights []Insight

	velocity := spendingVelocity(snap.Transactions, snap.Now, g.policy.WindowDays)
	if velocity.Percent > g.policy.VelocityAlertPercent {
		priority := PriorityMedium
		if velocity.Percent > g.policy.VelocityHighPercent {
			priority = PriorityHigh
		}
		confidence := 0.85
		description := fmt.Sprintf("Your spending over the last %d days is up %.0f%% on the %d days before.",
			g.policy.WindowDays, velocity.Percent, g.policy.WindowDays)
		if velocity.FromZero {
			confidence = 0.5
			description = fmt.Sprintf("You have spending in the last %d days but none in the %d days before.",
				g.policy.WindowDays, g.policy.WindowDays)
		}
		insights = append(insights, newInsight(InsightTypeSpendingPattern, priority,
			"Spending is accelerating", description, confidence, velocity.Percent/10))
	}

	minChange := decimal.NewFromFloat(g.policy.CategorySpikeMinAmount)
	for _, trend := range categoryTrends(snap.Transactions, snap.Now, g.policy.WindowDays) {
		if trend.FromZero || trend.PercentChange <= g.policy.CategorySpikeRatio || !trend.ChangeAmount.GreaterThan(minChange) {
			continue
		}
		priority := PriorityLow
		if trend.PercentChange > 1 {
			priority = PriorityMedium
		}
		insights = append(insights, newInsight(InsightTypeSpendingPattern, priority,
			fmt.Sprintf("%s spending is up", trend.Category),
			fmt.Sprintf("You spent %s on %s in the last %d days, %s more than the period before.",
				trend.CurrentSpend.StringFixed(2), trend.Category, g.policy.WindowDays, trend.ChangeAmount.StringFixed(2)),
			0.8, trend.PercentChange*5))
	}

	return insights
}

// AnalyzeSavingsOpportunities looks for unused subscriptions and a thin
// savings margin.
func (g *Generator) AnalyzeSavingsOpportunities(snap Snapshot) []Insight {
	var insights []Insight

	subscriptions := DetectSubscriptions(snap.Transactions, g.policy)
	for _, s := range UnusedSubscriptions(subscriptions, snap.Now, g.policy) {
		yearly := s.AverageAmount.Mul(decimal.NewFromInt(12))
		insights = append(insights, newInsight(InsightTypeSavingsOpportunity, PriorityMedium,
			fmt.Sprintf("Unused subscription: %s", s.Name),
			fmt.Sprintf("%s has not charged in over %d days. Cancelling it could save about %s a year.",
				s.Name, g.policy.UnusedSubscriptionDays, yearly.StringFixed(2)),
			0.7, yearly.InexactFloat64()/100))
	}

	flow := CashFlowWindow(snap.Transactions, g.policy.WindowDays, snap.Now)
	if flow.Income.IsPositive() {
		rate := flow.Net.Div(flow.Income).InexactFloat64()
		if rate < g.policy.LowSavingsRate {
			insights = append(insights, newInsight(InsightTypeSavingsOpportunity, PriorityMedium,
				"Low savings rate",
				fmt.Sprintf("You kept %.0f%% of your income over the last %d days.", math.Max(rate, 0)*100, g.policy.WindowDays),
				0.75, (g.policy.LowSavingsRate-rate)*20))
		}
	}

	return insights
}

// AnalyzeBudgetPerformance raises an alert for every budget close to or over
// its limit.
func (g *Generator) AnalyzeBudgetPerformance(snap Snapshot) []Insight {
	var insights []Insight

	for _, budget := range snap.Budgets {
		if !budget.Limit().IsPositive() {
			continue
		}
		spent := SpentAmount(snap.Transactions, budget, snap.Now)
		utilization := spent.Div(budget.Limit()).InexactFloat64()

		switch {
		case utilization > g.policy.BudgetOverRatio:
			insights = append(insights, newInsight(InsightTypeBudgetAlert, PriorityHigh,
				fmt.Sprintf("Over budget: %s", budget.Category()),
				fmt.Sprintf("You have spent %s of your %s %s budget of %s (%.0f%%).",
					spent.StringFixed(2), budget.Period(), budget.Category(), budget.Limit().StringFixed(2), utilization*100),
				0.95, utilization*5))
		case utilization > g.policy.BudgetWarnRatio:
			insights = append(insights, newInsight(InsightTypeBudgetAlert, PriorityMedium,
				fmt.Sprintf("Approaching budget: %s", budget.Category()),
				fmt.Sprintf("You have used %.0f%% of your %s %s budget.",
					utilization*100, budget.Period(), budget.Category()),
				0.9, utilization*4))
		}
	}

	return insights
}

// AssessRisk checks the emergency reserve and overdrawn accounts.
func (g *Generator) AssessRisk(snap Snapshot) []Insight {
	if len(snap.Accounts) == 0 {
		return nil
	}

	var insights []Insight

	monthly := monthlyExpenses(snap.Transactions, snap.Now, g.policy.WindowDays, g.policy.MinimumMonthlyExpenses)
	coverage := EmergencyCoverage(snap.Accounts, monthly)
	if !coverage.Unbounded && coverage.Months < g.policy.EmergencyTargetMonths {
		priority := PriorityMedium
		if coverage.Months < g.policy.EmergencyHighMonths {
			priority = PriorityHigh
		}
		insights = append(insights, newInsight(InsightTypeRisk, priority,
			"Emergency fund is low",
			fmt.Sprintf("Your savings cover %.1f months of expenses; %.0f months is recommended.",
				coverage.Months, g.policy.EmergencyTargetMonths),
			0.9, (g.policy.EmergencyTargetMonths-coverage.Months)*10/g.policy.EmergencyTargetMonths))
	}

	for _, account := range snap.Accounts {
		if account.Kind() == AccountKindChecking && account.Balance().IsNegative() {
			insights = append(insights, newInsight(InsightTypeRisk, PriorityCritical,
				"Account overdrawn",
				fmt.Sprintf("A checking account is overdrawn by %s.", account.Balance().Abs().StringFixed(2)),
				1, 10))
			break
		}
	}

	return insights
}

// Predict projects next window's expenses from the trailing window and the
// current velocity, and warns when they would outrun income.
func (g *Generator) Predict(snap Snapshot) []Insight {
	flow := CashFlowWindow(snap.Transactions, g.policy.WindowDays, snap.Now)
	if !flow.Expenses.IsPositive() || !flow.Income.IsPositive() {
		return nil
	}

	projected := flow.Expenses
	velocity := spendingVelocity(snap.Transactions, snap.Now, g.policy.WindowDays)
	if !velocity.FromZero && velocity.Percent > 0 {
		projected = projected.Mul(decimal.NewFromFloat(1 + velocity.Percent/100))
	}
	if !projected.GreaterThan(flow.Income) {
		return nil
	}

	shortfall := projected.Sub(flow.Income)
	priority := PriorityMedium
	if shortfall.GreaterThan(flow.Income.Div(decimal.NewFromInt(4))) {
		priority = PriorityHigh
	}
	return []Insight{newInsight(InsightTypePrediction, priority,
		"Projected shortfall",
		fmt.Sprintf("At your current pace you will spend %s over the next %d days, %s more than you earn.",
			projected.StringFixed(2), g.policy.WindowDays, shortfall.StringFixed(2)),
		0.6, shortfall.Div(flow.Income).InexactFloat64()*10)}
}
