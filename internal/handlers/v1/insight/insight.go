package insight

import (
	"time"

	"github.com/carson-networks/budget-insights/internal/analytics"
)

type Insight struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" enum:"low,medium,high,critical"`
	Type        string  `json:"type" enum:"spending_pattern,savings_opportunity,budget_alert,risk,prediction"`
	Confidence  float64 `json:"confidence" doc:"0 to 1"`
	ImpactScore float64 `json:"impactScore" doc:"0 to 10"`
}

type CategoryTrend struct {
	Category         string  `json:"category"`
	CurrentSpend     string  `json:"currentSpend"`
	PreviousSpend    string  `json:"previousSpend"`
	PercentChange    float64 `json:"percentChange" doc:"Ratio, 0.25 means up 25%"`
	ChangeAmount     string  `json:"changeAmount"`
	TransactionCount int     `json:"transactionCount"`
	FromZero         bool    `json:"fromZero,omitempty"`
}

type Subscription struct {
	Identifier          string  `json:"identifier"`
	Name                string  `json:"name"`
	AverageAmount       string  `json:"averageAmount"`
	LastUsed            string  `json:"lastUsed,omitempty"`
	Occurrences         int     `json:"occurrences"`
	AverageIntervalDays float64 `json:"averageIntervalDays"`
}

type Velocity struct {
	Percent  float64 `json:"percent"`
	FromZero bool    `json:"fromZero,omitempty"`
}

// Coverage omits months when there are no expenses to cover.
type Coverage struct {
	Months    *float64 `json:"months,omitempty"`
	Unbounded bool     `json:"unbounded,omitempty"`
}

type CashFlow struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// Report is the API response model for an insight report.
type Report struct {
	Sequence       uint64          `json:"sequence" doc:"Run number, increasing with every refresh"`
	GeneratedAt    string          `json:"generatedAt" doc:"Analysis time (RFC3339)"`
	Insights       []Insight       `json:"insights" doc:"Insights ordered by priority then impact"`
	CategoryTrends []CategoryTrend `json:"categoryTrends"`
	Subscriptions  []Subscription  `json:"subscriptions"`
	Unused         []Subscription  `json:"unusedSubscriptions"`
	Velocity       Velocity        `json:"velocity"`
	Coverage       Coverage        `json:"emergencyCoverage"`
	CashFlow       CashFlow        `json:"cashFlow"`
}

func reportFromAnalytics(seq uint64, r *analytics.Report) Report {
	out := Report{
		Sequence:       seq,
		GeneratedAt:    r.GeneratedAt.Format(time.RFC3339),
		Insights:       make([]Insight, len(r.Insights)),
		CategoryTrends: make([]CategoryTrend, len(r.CategoryTrends)),
		Subscriptions:  subscriptionsFromAnalytics(r.Subscriptions),
		Unused:         subscriptionsFromAnalytics(r.Unused),
		Velocity:       Velocity{Percent: r.Velocity.Percent, FromZero: r.Velocity.FromZero},
		Coverage:       Coverage{Unbounded: r.Coverage.Unbounded},
		CashFlow: CashFlow{
			Income:   r.CashFlow.Income.StringFixed(2),
			Expenses: r.CashFlow.Expenses.StringFixed(2),
			Net:      r.CashFlow.Net.StringFixed(2),
		},
	}

	if !r.Coverage.Unbounded {
		months := r.Coverage.Months
		out.Coverage.Months = &months
	}

	for i, in := range r.Insights {
		out.Insights[i] = Insight{
			Title:       in.Title,
			Description: in.Description,
			Priority:    in.Priority.String(),
			Type:        string(in.Type),
			Confidence:  in.Confidence,
			ImpactScore: in.ImpactScore,
		}
	}

	for i, t := range r.CategoryTrends {
		out.CategoryTrends[i] = CategoryTrend{
			Category:         t.Category,
			CurrentSpend:     t.CurrentSpend.StringFixed(2),
			PreviousSpend:    t.PreviousSpend.StringFixed(2),
			PercentChange:    t.PercentChange,
			ChangeAmount:     t.ChangeAmount.StringFixed(2),
			TransactionCount: t.TransactionCount,
			FromZero:         t.FromZero,
		}
	}

	return out
}

func subscriptionsFromAnalytics(subs []analytics.SubscriptionSummary) []Subscription {
	out := make([]Subscription, len(subs))
	for i, s := range subs {
		out[i] = Subscription{
			Identifier:          s.Identifier,
			Name:                s.Name,
			AverageAmount:       s.AverageAmount.StringFixed(2),
			Occurrences:         s.Occurrences,
			AverageIntervalDays: s.AverageIntervalDays,
		}
		if s.LastUsed != nil {
			out[i].LastUsed = s.LastUsed.Format(time.RFC3339)
		}
	}
	return out
}
