package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catDforD/Trackit/internal/apierror"
	"github.com/catDforD/Trackit/internal/logger"
	"github.com/catDforD/Trackit/internal/service"
)

// PatternsHandler handles pattern mining and insight HTTP requests
type PatternsHandler struct {
	patternService service.PatternService
}

// NewPatternsHandler creates a new patterns handler
func NewPatternsHandler(patternService service.PatternService) *PatternsHandler {
	return &PatternsHandler{
		patternService: patternService,
	}
}

// GetDayOfWeekPatterns returns weekday activity and mood patterns
// GET /api/v1/patterns/days?weeks=4&category=Exercise
func (h *PatternsHandler) GetDayOfWeekPatterns(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	patterns, err := h.patternService.DayOfWeekPatterns(c.Request.Context(), intQuery(c, "weeks"), c.Query("category"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to mine day patterns", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, patterns)
}

// GetStreaks returns current and historical activity streaks
// GET /api/v1/patterns/streaks?category=Exercise&days=30
func (h *PatternsHandler) GetStreaks(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	streaks, err := h.patternService.DetectStreaks(c.Request.Context(), c.Query("category"), intQuery(c, "days"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to detect streaks", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, streaks)
}

// GetCorrelations returns mood correlations and co-occurring activities
// GET /api/v1/patterns/correlations?weeks=4
func (h *PatternsHandler) GetCorrelations(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	report, err := h.patternService.DetectCorrelations(c.Request.Context(), intQuery(c, "weeks"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to detect correlations", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetInsights returns the combined insight report with recommendations
// GET /api/v1/insights?weeks=2
func (h *PatternsHandler) GetInsights(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	insights, err := h.patternService.Insights(c.Request.Context(), intQuery(c, "weeks"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to synthesize insights", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, insights)
}
