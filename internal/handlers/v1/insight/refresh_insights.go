package insight

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/logging"
)

type reportRefresher interface {
	Refresh(ctx context.Context) (*analytics.Report, uint64, error)
}

// RefreshInsightsHandler handles POST /v1/insights/refresh.
type RefreshInsightsHandler struct {
	InsightService reportRefresher
}

func NewRefreshInsightsHandler(svc reportRefresher) *RefreshInsightsHandler {
	return &RefreshInsightsHandler{InsightService: svc}
}

func (h *RefreshInsightsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-insights",
		Method:      http.MethodPost,
		Path:        "/v1/insights/refresh",
		Summary:     "Rebuild insights",
		Description: "Runs a fresh analysis over the stored data. A run replaced by a newer one before finishing returns 409.",
		Tags:        []string{"Insights"},
	}, h.handle)
}

func (h *RefreshInsightsHandler) handle(ctx context.Context, _ *struct{}) (*ReportOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("refreshInsightsMs")
	}
	report, seq, err := h.InsightService.Refresh(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, reportError(err)
	}

	if logData != nil {
		logData.AddData("sequence", seq)
		logData.AddData("insightCount", len(report.Insights))
	}

	return &ReportOutput{Body: reportFromAnalytics(seq, report)}, nil
}
