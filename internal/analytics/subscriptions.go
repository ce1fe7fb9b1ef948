package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func subscriptionKey(tx Transaction) (key, name string) {
	name = strings.TrimSpace(tx.Merchant())
	if name == "" {
		name = strings.TrimSpace(tx.Category())
	}
	return strings.ToLower(name), name
}

// calendarDays counts whole calendar days from a to b in a's location.
func calendarDays(a, b time.Time) int {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DetectSubscriptions groups expenses by merchant (or category when there is
// no merchant) and keeps the groups that look recurring: a monthly-looking
// average interval or enough occurrences, with consistent amounts.
func DetectSubscriptions(transactions []Transaction, policy Policy) []SubscriptionSummary {
	groups := make(map[string][]Transaction)
	for _, tx := range transactions {
		if !isExpense(tx) {
			continue
		}
		key, _ := subscriptionKey(tx)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	var summaries []SubscriptionSummary
	for key, group := range groups {
		if len(group) < 2 {
			continue
		}
		if summary, ok := summarizeRecurring(key, group, policy); ok {
			summaries = append(summaries, summary)
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].AverageAmount.Equal(summaries[j].AverageAmount) {
			return summaries[i].AverageAmount.GreaterThan(summaries[j].AverageAmount)
		}
		return summaries[i].Identifier < summaries[j].Identifier
	})

	return summaries
}

func summarizeRecurring(key string, group []Transaction, policy Policy) (SubscriptionSummary, bool) {
	sorted := make([]Transaction, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date().Before(sorted[j].Date())
	})

	totalDays := 0
	for i := 1; i < len(sorted); i++ {
		totalDays += calendarDays(sorted[i-1].Date(), sorted[i].Date())
	}
	avgInterval := float64(totalDays) / float64(len(sorted)-1)

	total := decimal.Zero
	for _, tx := range sorted {
		total = total.Add(tx.Amount().Abs())
	}
	average := total.Div(decimal.NewFromInt(int64(len(sorted))))

	deviation := decimal.Zero
	for _, tx := range sorted {
		deviation = decimal.Max(deviation, tx.Amount().Abs().Sub(average).Abs())
	}

	tolerance := decimal.Max(
		decimal.NewFromFloat(policy.SubscriptionAmountToleranceFloor),
		average.Mul(decimal.NewFromFloat(policy.SubscriptionAmountTolerance)),
	)

	monthlyCadence := avgInterval >= policy.SubscriptionMinIntervalDays &&
		avgInterval <= policy.SubscriptionMaxIntervalDays
	frequent := len(sorted) >= policy.SubscriptionMinOccurrences
	if !(monthlyCadence || frequent) || deviation.GreaterThan(tolerance) {
		return SubscriptionSummary{}, false
	}

	last := sorted[len(sorted)-1]
	_, name := subscriptionKey(last)
	lastUsed := last.Date()

	return SubscriptionSummary{
		Identifier:          key,
		Name:                name,
		AverageAmount:       average,
		LastUsed:            &lastUsed,
		Occurrences:         len(sorted),
		AverageIntervalDays: avgInterval,
	}, true
}

// UnusedSubscriptions returns the subscriptions with no recorded use, or whose
// last use is older than the policy cutoff.
func UnusedSubscriptions(summaries []SubscriptionSummary, now time.Time, policy Policy) []SubscriptionSummary {
	cutoff := now.AddDate(0, 0, -policy.UnusedSubscriptionDays)

	var unused []SubscriptionSummary
	for _, s := range summaries {
		if s.LastUsed == nil || s.LastUsed.Before(cutoff) {
			unused = append(unused, s)
		}
	}
	return unused
}
