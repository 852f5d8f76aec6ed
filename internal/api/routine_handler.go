package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineHandler serves weekly plan authoring and selection.
type RoutineHandler struct {
	routineService service.RoutineService
}

func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

type CreateRoutineRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	IsPublic    bool            `json:"isPublic"`
	Schedule    domain.Schedule `json:"schedule"`
}

type AssignRoutineRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), actor, req.Name, req.Description, req.IsPublic, req.Schedule)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create routine")
		}
		return
	}
	c.JSON(http.StatusCreated, routine)
}

// ListRoutines reads the tab from the query string: mine (default), all,
// or assigned.
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	tab := service.RoutineTab(c.DefaultQuery("tab", string(service.TabMine)))
	routines, err := h.routineService.ListRoutines(c.Request.Context(), actor, tab)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list routines")
		return
	}
	c.JSON(http.StatusOK, routines)
}

func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID")
		return
	}

	routine, err := h.routineService.GetRoutine(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load routine")
		}
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID")
		return
	}

	err = h.routineService.DeleteRoutine(c.Request.Context(), actor, id)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not delete routine")
	}
}

// Activate makes the routine the caller's active plan.
func (h *RoutineHandler) Activate(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID")
		return
	}

	err = h.routineService.AssignActive(c.Request.Context(), actor, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"activeRoutineId": id.Hex()})
	case errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not activate routine")
	}
}

// AssignToClient dedicates a routine to one client (staff only).
func (h *RoutineHandler) AssignToClient(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID")
		return
	}

	var req AssignRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID")
		return
	}

	err = h.routineService.AssignToClient(c.Request.Context(), actor, id, clientID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"assignedToId": clientID.Hex()})
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoutineNotFound), errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not assign routine")
	}
}
