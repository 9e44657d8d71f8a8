package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/catDforD/Trackit/internal/apierror"
	"github.com/catDforD/Trackit/internal/logger"
	"github.com/catDforD/Trackit/internal/models"
	"github.com/catDforD/Trackit/internal/service"
)

// EntryHandler handles entry-related HTTP requests
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// CreateEntry records a new habit entry
// POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	var req models.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, bindingFieldErrors(verrs)))
			return
		}
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	if req.Date != "" {
		if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "date", Message: "must be formatted as YYYY-MM-DD", Code: "invalid_date"},
			}))
			return
		}
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to create entry", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntry returns a single entry by ID
// GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierror.WriteProblem(c, apierror.NewInvalidIDError(requestID, c.Param("id")))
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), id)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get entry", logger.Err(err), logger.Int64("id", id))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}
	if entry == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Entry", c.Param("id")))
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ListEntries returns entries for a week, or recent entries for a
// category when one is given
// GET /api/v1/entries?week=2026-W02&category=Exercise&limit=20
func (h *EntryHandler) ListEntries(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	if category := c.Query("category"); category != "" {
		limit := intQuery(c, "limit")
		entries, err := h.entryService.GetEntriesByCategory(c.Request.Context(), category, limit)
		if err != nil {
			logger.Ctx(c.Request.Context()).Error("failed to list entries", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
		return
	}

	weekID := c.Query("week")
	if weekID != "" && !validWeek(weekID) {
		apierror.WriteProblem(c, apierror.NewInvalidWeekError(requestID, weekID))
		return
	}

	entries, err := h.entryService.GetEntriesByWeek(c.Request.Context(), weekID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list entries", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// GetCategories returns all distinct categories
// GET /api/v1/categories
func (h *EntryHandler) GetCategories(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	categories, err := h.entryService.GetCategories(c.Request.Context())
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get categories", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// DeleteEntry removes an entry by ID
// DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierror.WriteProblem(c, apierror.NewInvalidIDError(requestID, c.Param("id")))
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Entry", c.Param("id")))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to delete entry", logger.Err(err), logger.Int64("id", id))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.Status(http.StatusNoContent)
}

// bindingFieldErrors converts validator errors into problem field errors.
func bindingFieldErrors(verrs validator.ValidationErrors) []apierror.FieldError {
	fieldErrors := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		message := "is invalid"
		switch fe.Tag() {
		case "required":
			message = "is required"
		case "oneof":
			message = "must be one of: " + fe.Param()
		}
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   fe.Field(),
			Message: message,
			Code:    fe.Tag(),
		})
	}
	return fieldErrors
}
