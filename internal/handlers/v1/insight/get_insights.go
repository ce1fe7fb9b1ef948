package insight

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-insights/internal/analytics"
	"github.com/carson-networks/budget-insights/internal/logging"
	"github.com/carson-networks/budget-insights/internal/service"
)

type ReportOutput struct {
	Body Report
}

type reportReader interface {
	Current(ctx context.Context) (*analytics.Report, uint64, error)
}

// GetInsightsHandler handles GET /v1/insights.
type GetInsightsHandler struct {
	InsightService reportReader
}

func NewGetInsightsHandler(svc reportReader) *GetInsightsHandler {
	return &GetInsightsHandler{InsightService: svc}
}

func (h *GetInsightsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-insights",
		Method:      http.MethodGet,
		Path:        "/v1/insights",
		Summary:     "Get the latest insights",
		Description: "Returns the most recent insight report, building one if none exists yet.",
		Tags:        []string{"Insights"},
	}, h.handle)
}

func (h *GetInsightsHandler) handle(ctx context.Context, _ *struct{}) (*ReportOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("currentInsightsMs")
	}
	report, seq, err := h.InsightService.Current(ctx)
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

func reportError(err error) error {
	if errors.Is(err, service.ErrSuperseded) {
		return huma.NewError(http.StatusConflict, "a newer insight run replaced this one", err)
	}
	return huma.NewError(http.StatusInternalServerError, "failed to build insights", err)
}
