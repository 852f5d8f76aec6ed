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

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileResponse is the identity shape every authenticated endpoint
// shares.
type ProfileResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

type ChangePasswordRequest struct {
	TargetID        string      `json:"targetId,omitempty"`
	TargetRole      domain.Role `json:"targetRole,omitempty"`
	CurrentPassword string      `json:"currentPassword,omitempty"`
	NewPassword     string      `json:"newPassword" binding:"required,min=6"`
}

// --- Handler Methods ---

// Login authenticates against staff first, then customers, and returns a
// signed token plus the matched profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, profile, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Profile: mapProfileToResponse(*profile),
	})
}

// Me returns the canonical profile behind the token.
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}
	c.JSON(http.StatusOK, mapProfileToResponse(profile))
}

// ChangePassword updates a password for the caller or, for staff, any
// other profile.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	profile, err := profileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get profile from token")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	targetID := profile.ID
	targetRole := profile.Role
	if req.TargetID != "" {
		targetID, err = primitive.ObjectIDFromHex(req.TargetID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid target ID")
			return
		}
		if req.TargetRole != "" {
			targetRole = req.TargetRole
		}
	}

	err = h.authService.ChangePassword(c.Request.Context(), profile, targetID, targetRole, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not update password")
	}
}

func mapProfileToResponse(p domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:    p.ID.Hex(),
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
}
