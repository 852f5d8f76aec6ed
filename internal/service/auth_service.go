package service

import (
	"context"
	"errors"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrPermissionDenied     = errors.New("permission denied")
)

type AuthService interface {
	// Login checks the employees collection first, then customers.
	// Password equality is strict bcrypt comparison for both.
	Login(ctx context.Context, email, password string) (token string, profile *domain.Profile, err error)
	// ProfileByID re-reads the canonical record for the given identity.
	// The token only carries id and role; everything else is read through.
	ProfileByID(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.Profile, error)
	// ChangePassword is allowed for the profile itself (with the current
	// password) or for staff acting on any profile (without it).
	ChangePassword(ctx context.Context, actor domain.Profile, targetID primitive.ObjectID, targetRole domain.Role, currentPassword, newPassword string) error
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	customerRepo  repository.CustomerRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, customerRepo repository.CustomerRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		customerRepo:  customerRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	// Staff first. Only on a definite miss do we consult the customers
	// collection; global email uniqueness keeps this order from ever
	// mattering in practice.
	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return "", nil, ErrAuthenticationFailed
		}
		profile := user.AsProfile()
		token, err := s.generateJWT(profile)
		if err != nil {
			return "", nil, ErrTokenGeneration
		}
		return token, &profile, nil
	case errors.Is(err, repository.ErrNotFound):
		// fall through to customers
	default:
		return "", nil, err
	}

	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrAuthenticationFailed
	}
	profile := customer.AsProfile()
	token, err := s.generateJWT(profile)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, &profile, nil
}

func (s *authService) ProfileByID(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.Profile, error) {
	if role == domain.RoleClient {
		customer, err := s.customerRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		profile := customer.AsProfile()
		return &profile, nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	profile := user.AsProfile()
	return &profile, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor domain.Profile, targetID primitive.ObjectID, targetRole domain.Role, currentPassword, newPassword string) error {
	if newPassword == "" {
		return ErrValidationFailed
	}

	self := actor.ID == targetID
	if !self && !actor.IsStaff() {
		return ErrPermissionDenied
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}

	if targetRole == domain.RoleClient {
		customer, err := s.customerRepo.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		if self {
			if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(currentPassword)) != nil {
				return ErrAuthenticationFailed
			}
		}
		customer.PasswordHash = string(hashed)
		return s.customerRepo.Update(ctx, customer)
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if self {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
			return ErrAuthenticationFailed
		}
	}
	user.PasswordHash = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(profile domain.Profile) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: profile.ID.Hex(),
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "titangym",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
