package analytics

import (
	"fmt"
	"math"
)

// Priority orders insights; higher values are more urgent.
type Priority int8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("priority(%d)", int8(p))
	}
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*p = PriorityLow
	case "medium":
		*p = PriorityMedium
	case "high":
		*p = PriorityHigh
	case "critical":
		*p = PriorityCritical
	default:
		return fmt.Errorf("unknown priority %q", text)
	}
	return nil
}

type InsightType string

const (
	InsightTypeSpendingPattern    InsightType = "spending_pattern"
	InsightTypeSavingsOpportunity InsightType = "savings_opportunity"
	InsightTypeBudgetAlert        InsightType = "budget_alert"
	InsightTypeRisk               InsightType = "risk"
	InsightTypePrediction         InsightType = "prediction"
)

// Insight is a human-readable finding derived from one analysis run.
type Insight struct {
	Title       string
	Description string
	Priority    Priority
	Type        InsightType
	Confidence  float64
	ImpactScore float64
}

func newInsight(t InsightType, p Priority, title, description string, confidence, impact float64) Insight {
	return Insight{
		Title:       title,
		Description: description,
		Priority:    p,
		Type:        t,
		Confidence:  clamp(confidence, 0, 1),
		ImpactScore: clamp(impact, 0, 10),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
