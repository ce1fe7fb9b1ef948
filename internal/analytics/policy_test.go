package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy_Valid(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
}

func TestPolicy_ValidateCollectsProblems(t *testing.T) {
	p := DefaultPolicy()
	p.WindowDays = 0
	p.BudgetOverRatio = 0.5
	p.SubscriptionMaxIntervalDays = 10

	err := p.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "window_days")
	assert.Contains(t, err.Error(), "budget ratios")
	assert.Contains(t, err.Error(), "subscription interval window")
}
