package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler serves the movement catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type CreateExerciseRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	IsPublic bool   `json:"isPublic"`
}

func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), actor, req.Name, req.Category, req.IsPublic)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create exercise")
		}
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), actor)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	err = h.exerciseService.DeleteExercise(c.Request.Context(), actor, id)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not delete exercise")
	}
}
