package analytics

import (
	"fmt"
	"strings"
)

// Policy holds the product thresholds the analytics apply. None of these are
// derived from data; they are tunable through configuration.
type Policy struct {
	WindowDays int `koanf:"window_days"`

	VelocityAlertPercent   float64 `koanf:"velocity_alert_percent"`
	VelocityHighPercent    float64 `koanf:"velocity_high_percent"`
	CategorySpikeRatio     float64 `koanf:"category_spike_ratio"`
	CategorySpikeMinAmount float64 `koanf:"category_spike_min_amount"`

	SubscriptionMinIntervalDays      float64 `koanf:"subscription_min_interval_days"`
	SubscriptionMaxIntervalDays      float64 `koanf:"subscription_max_interval_days"`
	SubscriptionMinOccurrences       int     `koanf:"subscription_min_occurrences"`
	SubscriptionAmountTolerance      float64 `koanf:"subscription_amount_tolerance"`
	SubscriptionAmountToleranceFloor float64 `koanf:"subscription_amount_tolerance_floor"`
	UnusedSubscriptionDays           int     `koanf:"unused_subscription_days"`

	BudgetWarnRatio float64 `koanf:"budget_warn_ratio"`
	BudgetOverRatio float64 `koanf:"budget_over_ratio"`

	EmergencyTargetMonths  float64 `koanf:"emergency_target_months"`
	EmergencyHighMonths    float64 `koanf:"emergency_high_months"`
	MinimumMonthlyExpenses float64 `koanf:"minimum_monthly_expenses"`

	LowSavingsRate float64 `koanf:"low_savings_rate"`
}

// DefaultPolicy returns the thresholds the finance app shipped with.
func DefaultPolicy() Policy {
	return Policy{
		WindowDays: 30,

		VelocityAlertPercent:   20,
		VelocityHighPercent:    50,
		CategorySpikeRatio:     0.5,
		CategorySpikeMinAmount: 50,

		SubscriptionMinIntervalDays:      25,
		SubscriptionMaxIntervalDays:      40,
		SubscriptionMinOccurrences:       3,
		SubscriptionAmountTolerance:      0.15,
		SubscriptionAmountToleranceFloor: 5,
		UnusedSubscriptionDays:           45,

		BudgetWarnRatio: 0.9,
		BudgetOverRatio: 1.1,

		EmergencyTargetMonths:  3,
		EmergencyHighMonths:    1,
		MinimumMonthlyExpenses: 1,

		LowSavingsRate: 0.1,
	}
}

// Validate reports every inconsistent threshold at once.
func (p Policy) Validate() error {
	var problems []string

	if p.WindowDays < 1 {
		problems = append(problems, fmt.Sprintf("window_days %d must be at least 1", p.WindowDays))
	}
	if p.VelocityHighPercent < p.VelocityAlertPercent {
		problems = append(problems, "velocity_high_percent must not be below velocity_alert_percent")
	}
	if p.SubscriptionMinIntervalDays <= 0 || p.SubscriptionMaxIntervalDays < p.SubscriptionMinIntervalDays {
		problems = append(problems, fmt.Sprintf("subscription interval window [%v, %v] is invalid",
			p.SubscriptionMinIntervalDays, p.SubscriptionMaxIntervalDays))
	}
	if p.SubscriptionMinOccurrences < 2 {
		problems = append(problems, "subscription_min_occurrences must be at least 2")
	}
	if p.SubscriptionAmountTolerance < 0 || p.SubscriptionAmountToleranceFloor < 0 {
		problems = append(problems, "subscription amount tolerances must not be negative")
	}
	if p.UnusedSubscriptionDays < 1 {
		problems = append(problems, "unused_subscription_days must be at least 1")
	}
	if p.BudgetWarnRatio <= 0 || p.BudgetOverRatio < p.BudgetWarnRatio {
		problems = append(problems, "budget ratios must satisfy 0 < warn <= over")
	}
	if p.EmergencyHighMonths < 0 || p.EmergencyTargetMonths < p.EmergencyHighMonths {
		problems = append(problems, "emergency months must satisfy 0 <= high <= target")
	}
	if p.MinimumMonthlyExpenses <= 0 {
		problems = append(problems, "minimum_monthly_expenses must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid analytics policy:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
