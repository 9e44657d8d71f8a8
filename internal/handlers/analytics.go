package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catDforD/Trackit/internal/apierror"
	"github.com/catDforD/Trackit/internal/logger"
	"github.com/catDforD/Trackit/internal/service"
)

// AnalyticsHandler handles aggregation and trend HTTP requests
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetWeeklyStats returns aggregated statistics for one ISO week
// GET /api/v1/analytics/weekly?week=2026-W02&category=Exercise
func (h *AnalyticsHandler) GetWeeklyStats(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	weekID := c.Query("week")
	if weekID != "" && !validWeek(weekID) {
		apierror.WriteProblem(c, apierror.NewInvalidWeekError(requestID, weekID))
		return
	}

	stats, err := h.analyticsService.WeeklyStatistics(c.Request.Context(), weekID, c.Query("category"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to compute weekly stats", logger.Err(err), logger.String("week", weekID))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetTrends returns daily activity with moving average and fitted trend
// GET /api/v1/analytics/trends?category=Exercise&metric=distance_km&window_days=7&weeks=4
func (h *AnalyticsHandler) GetTrends(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	opts := service.TrendOptions{
		Category:   c.Query("category"),
		Metric:     c.Query("metric"),
		WindowDays: intQuery(c, "window_days"),
		WeeksBack:  intQuery(c, "weeks"),
	}

	result, err := h.analyticsService.TrendAnalysis(c.Request.Context(), opts)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to compute trends", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, result)
}

// ComparePeriods returns deltas between two ISO weeks
// GET /api/v1/analytics/compare?period1=2026-W01&period2=2026-W02&category=Exercise
func (h *AnalyticsHandler) ComparePeriods(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	period1 := c.Query("period1")
	period2 := c.Query("period2")
	if period1 == "" || period2 == "" {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			"Both period1 and period2 query parameters are required",
			"Provide two weeks to compare, for example period1=2026-W01&period2=2026-W02"))
		return
	}
	for _, p := range []string{period1, period2} {
		if !validWeek(p) {
			apierror.WriteProblem(c, apierror.NewInvalidWeekError(requestID, p))
			return
		}
	}

	comparison, err := h.analyticsService.ComparePeriods(c.Request.Context(), period1, period2, c.Query("category"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to compare periods", logger.Err(err),
			logger.String("period1", period1), logger.String("period2", period2))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// GetDailySummary returns per-day counts over a trailing window
// GET /api/v1/analytics/daily?days=30&category=Exercise
func (h *AnalyticsHandler) GetDailySummary(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	summaries, err := h.analyticsService.DailySummary(c.Request.Context(), intQuery(c, "days"), c.Query("category"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to compute daily summary", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": summaries, "count": len(summaries)})
}
