package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the live training session and its history.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// UpdateSetRequest addresses one set inside the live session by index.
type UpdateSetRequest struct {
	ExerciseIndex *int    `json:"exerciseIndex" binding:"required"`
	SetIndex      *int    `json:"setIndex" binding:"required"`
	Reps          int     `json:"reps"`
	Weight        float64 `json:"weight"`
	Completed     bool    `json:"completed"`
}

func (h *WorkoutHandler) Status(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	status, err := h.workoutService.Status(c.Request.Context(), actor)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not derive workout status")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *WorkoutHandler) StartSession(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	session, err := h.workoutService.StartSession(c.Request.Context(), actor)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, session)
	case errors.Is(err, service.ErrNoActiveRoutine):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAlreadyTrained):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not start workout session")
	}
}

func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.workoutService.UpdateSet(c.Request.Context(), actor, *req.ExerciseIndex, *req.SetIndex, req.Reps, req.Weight, req.Completed)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, session)
	case errors.Is(err, service.ErrNoSession):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSetOutOfRange):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not update set")
	}
}

func (h *WorkoutHandler) Finish(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	log, err := h.workoutService.Finish(c.Request.Context(), actor)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, log)
	case errors.Is(err, service.ErrNoSession):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptySession):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyTrained):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not save workout")
	}
}

// History lists persisted logs, optionally narrowed to one weekday via
// the day query parameter.
func (h *WorkoutHandler) History(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	logs, err := h.workoutService.History(c.Request.Context(), actor, c.Query("day"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list workout history")
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *WorkoutHandler) Streak(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	streak, err := h.workoutService.Streak(c.Request.Context(), actor)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not compute streak")
		return
	}

	calories, err := h.workoutService.CaloriesToday(c.Request.Context(), actor)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not estimate calories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"streak":        streak,
		"caloriesToday": calories,
	})
}
