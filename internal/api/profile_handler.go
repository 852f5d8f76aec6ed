package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileHandler serves the staff roster and customer management forms.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request Structs ---

type CreateEmployeeRequest struct {
	Name      string      `json:"name" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=6"`
	Role      domain.Role `json:"role" binding:"required,oneof=admin employee trainer receptionist"`
	StartDate *time.Time  `json:"startDate,omitempty"`
}

type UpdateEmployeeRequest struct {
	Name   string        `json:"name" binding:"required"`
	Email  string        `json:"email" binding:"required,email"`
	Role   domain.Role   `json:"role" binding:"required,oneof=admin employee trainer receptionist"`
	Status domain.Status `json:"status" binding:"required,oneof=active inactive"`
}

type CreateCustomerRequest struct {
	Name       string                `json:"name" binding:"required"`
	Email      string                `json:"email" binding:"required,email"`
	Password   string                `json:"password" binding:"required,min=6"`
	Plan       domain.MembershipPlan `json:"membershipType" binding:"required,oneof=basico pro vip"`
	AmountPaid float64               `json:"amountPaid"`
	ExpiryDate time.Time             `json:"expiryDate" binding:"required"`
}

type UpdateCustomerRequest struct {
	Name       string                `json:"name" binding:"required"`
	Email      string                `json:"email" binding:"required,email"`
	Status     domain.Status         `json:"status" binding:"required,oneof=active inactive"`
	Plan       domain.MembershipPlan `json:"membershipType" binding:"required,oneof=basico pro vip"`
	AmountPaid float64               `json:"amountPaid"`
	ExpiryDate time.Time             `json:"expiryDate" binding:"required"`
}

// --- Employee Endpoints ---

func (h *ProfileHandler) CreateEmployee(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.CreateEmployee(c.Request.Context(), actor, req.Name, req.Email, req.Password, req.Role, req.StartDate)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *ProfileHandler) ListEmployees(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	users, err := h.profileService.ListEmployees(c.Request.Context(), actor)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *ProfileHandler) UpdateEmployee(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.UpdateEmployee(c.Request.Context(), actor, id, req.Name, req.Email, req.Role, req.Status)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) DeleteEmployee(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if err := h.profileService.DeleteEmployee(c.Request.Context(), actor, id); err != nil {
		respondProfileError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Customer Endpoints ---

func (h *ProfileHandler) CreateCustomer(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	customer, err := h.profileService.CreateCustomer(c.Request.Context(), actor, req.Name, req.Email, req.Password, req.Plan, req.AmountPaid, req.ExpiryDate)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *ProfileHandler) ListCustomers(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	customers, err := h.profileService.ListCustomers(c.Request.Context(), actor)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *ProfileHandler) UpdateCustomer(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	customer, err := h.profileService.UpdateCustomer(c.Request.Context(), actor, id, req.Name, req.Email, req.Status, req.Plan, req.AmountPaid, req.ExpiryDate)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *ProfileHandler) DeleteCustomer(c *gin.Context) {
	actor, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	if err := h.profileService.DeleteCustomer(c.Request.Context(), actor, id); err != nil {
		respondProfileError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondProfileError maps the service error taxonomy to HTTP codes.
func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
