package api

import (
	"errors"
	"net/http"

	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the business overview for staff.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not compute dashboard stats")
		}
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) Suggestions(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	suggestions, err := h.dashboardService.Suggestions(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not list suggestions")
		}
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// Insight is always a 200 with a sentence; the generator falls back
// internally rather than erroring.
func (h *DashboardHandler) Insight(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	text, err := h.dashboardService.Insight(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not generate insight")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": text})
}
