package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wellcoach/patterns-api/internal/apierror"
	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/service"
)

// PatternsHandler handles pattern-related HTTP requests
type PatternsHandler struct {
	patternService service.PatternService
}

// NewPatternsHandler creates a new patterns handler
func NewPatternsHandler(patternService service.PatternService) *PatternsHandler {
	return &PatternsHandler{
		patternService: patternService,
	}
}

// GetPatterns returns the behavioral patterns of the authenticated user.
// An empty result is a normal 200 with empty lists.
// GET /api/v1/patterns?days=N
func (h *PatternsHandler) GetPatterns(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	userID := c.GetString("user_id")
	if userID == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	daysBack := 0
	if raw, ok := c.GetQuery("days"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > h.patternService.MaxDaysBack() {
			apierror.WriteProblem(c, apierror.NewInvalidWindowError(requestID, "days", raw, h.patternService.MaxDaysBack()))
			return
		}
		daysBack = parsed
	}

	patterns, err := h.patternService.GetUserPatterns(c.Request.Context(), userID, daysBack)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDaysBack):
			apierror.WriteProblem(c, apierror.NewInvalidWindowError(requestID, "days", strconv.Itoa(daysBack), h.patternService.MaxDaysBack()))
		case errors.Is(err, service.ErrMissingUserID):
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to get patterns", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, patterns)
}
