package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler serves the check-in/out punch card.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// RecordRequest carries the geolocation fix captured by the caller.
// Both coordinates are required: a punch without a fix is refused.
type RecordRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (h *AttendanceHandler) Record(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	location := &domain.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	record, err := h.attendanceService.Record(c.Request.Context(), actor, location)
	if err != nil {
		if errors.Is(err, service.ErrLocationRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not record attendance")
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) ListMine(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	records, err := h.attendanceService.ListMine(c.Request.Context(), actor)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list attendance")
		return
	}

	status, err := h.attendanceService.CurrentStatus(c.Request.Context(), actor)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not derive attendance status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records":   records,
		"checkedIn": status == domain.AttendanceIn,
	})
}

func (h *AttendanceHandler) ListAll(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	records, err := h.attendanceService.ListAll(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not list attendance")
		}
		return
	}
	c.JSON(http.StatusOK, records)
}
