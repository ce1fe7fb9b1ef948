package notify

import (
	"encoding/json"
	"time"

	"github.com/carson-networks/budget-insights/internal/analytics"
)

// maxMessageInsights bounds how many insights a notification carries.
const maxMessageInsights = 5

type InsightSummary struct {
	Title       string                `json:"title"`
	Type        analytics.InsightType `json:"type"`
	Priority    analytics.Priority    `json:"priority"`
	ImpactScore float64               `json:"impactScore"`
}

// InsightsMessage announces that a new report is available. Consumers fetch
// the full report from the API.
type InsightsMessage struct {
	Sequence     uint64           `json:"sequence"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	InsightCount int              `json:"insightCount"`
	Top          []InsightSummary `json:"top"`
	Timestamp    time.Time        `json:"timestamp"`
}

func NewInsightsMessage(seq uint64, report *analytics.Report) *InsightsMessage {
	msg := &InsightsMessage{
		Sequence:     seq,
		GeneratedAt:  report.GeneratedAt,
		InsightCount: len(report.Insights),
		Timestamp:    time.Now(),
	}
	for i, in := range report.Insights {
		if i == maxMessageInsights {
			break
		}
		msg.Top = append(msg.Top, InsightSummary{
			Title:       in.Title,
			Type:        in.Type,
			Priority:    in.Priority,
			ImpactScore: in.ImpactScore,
		})
	}
	return msg
}

func (m *InsightsMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func InsightsMessageFromJSON(data []byte) (*InsightsMessage, error) {
	var msg InsightsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
