package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context key for the resolved profile.
const ContextProfileKey = "profile"

// jwtClaims mirrors the structure authService.generateJWT signs.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and resolves the canonical
// profile record behind it. The token only carries id and role; name and
// email always come from the current collection state, so a rename or
// delete takes effect on the next request.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(authService.GetJWTSecret()), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}
		if !token.Valid || claims.UserID == "" || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid subject in token")
			return
		}

		profile, err := authService.ProfileByID(c.Request.Context(), id, claims.Role)
		if err != nil {
			if errors.Is(err, service.ErrProfileNotFound) {
				abortWithError(c, http.StatusUnauthorized, "Profile no longer exists")
			} else {
				abortWithError(c, http.StatusInternalServerError, "Failed to resolve profile")
			}
			return
		}

		c.Set(ContextProfileKey, *profile)
		c.Next()
	}
}

// StaffMiddleware restricts a route group to non-client roles.
// Must run AFTER AuthMiddleware.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := profileFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Profile not found in context")
			return
		}
		if !profile.IsStaff() {
			abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: Role '%s' does not have permission", profile.Role))
			return
		}
		c.Next()
	}
}

// RoleMiddleware restricts a route group to specific roles.
// Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := profileFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Profile not found in context")
			return
		}

		for _, allowed := range allowedRoles {
			if profile.Role == allowed {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: Role '%s' does not have permission", profile.Role))
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func profileFromContext(c *gin.Context) (domain.Profile, error) {
	raw, exists := c.Get(ContextProfileKey)
	if !exists {
		return domain.Profile{}, errors.New("profile not found in context")
	}
	profile, ok := raw.(domain.Profile)
	if !ok {
		return domain.Profile{}, errors.New("invalid profile type in context")
	}
	return profile, nil
}
