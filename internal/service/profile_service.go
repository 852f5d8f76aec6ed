package service

import (
	"context"
	"errors"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken = errors.New("email is already registered")
)

// ProfileService covers the administrative forms: staff roster and
// customer management. All operations require a staff actor.
type ProfileService interface {
	CreateEmployee(ctx context.Context, actor domain.Profile, name, email, password string, role domain.Role, startDate *time.Time) (*domain.User, error)
	ListEmployees(ctx context.Context, actor domain.Profile) ([]domain.User, error)
	UpdateEmployee(ctx context.Context, actor domain.Profile, id primitive.ObjectID, name, email string, role domain.Role, status domain.Status) (*domain.User, error)
	// DeleteEmployee removes a staff member. Removing an admin account
	// requires the actor to be an admin too.
	DeleteEmployee(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error

	CreateCustomer(ctx context.Context, actor domain.Profile, name, email, password string, plan domain.MembershipPlan, amountPaid float64, expiryDate time.Time) (*domain.Customer, error)
	ListCustomers(ctx context.Context, actor domain.Profile) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, actor domain.Profile, id primitive.ObjectID, name, email string, status domain.Status, plan domain.MembershipPlan, amountPaid float64, expiryDate time.Time) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error
}

type profileService struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
}

func NewProfileService(userRepo repository.UserRepository, customerRepo repository.CustomerRepository) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
	}
}

// emailInUse checks BOTH identity collections. The same address existing
// as staff and as a customer would make the login scan order load-bearing,
// so uniqueness is global.
func (s *profileService) emailInUse(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	if user, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		if user.ID != exclude {
			return true, nil
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	if customer, err := s.customerRepo.GetByEmail(ctx, email); err == nil {
		if customer.ID != exclude {
			return true, nil
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	return false, nil
}

func (s *profileService) CreateEmployee(ctx context.Context, actor domain.Profile, name, email, password string, role domain.Role, startDate *time.Time) (*domain.User, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	if name == "" || email == "" || password == "" || role == "" || role == domain.RoleClient {
		return nil, ErrValidationFailed
	}

	taken, err := s.emailInUse(ctx, email, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Status:       domain.StatusActive,
		StartDate:    startDate,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (s *profileService) ListEmployees(ctx context.Context, actor domain.Profile) ([]domain.User, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.List(ctx)
}

func (s *profileService) UpdateEmployee(ctx context.Context, actor domain.Profile, id primitive.ObjectID, name, email string, role domain.Role, status domain.Status) (*domain.User, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	if name == "" || email == "" || role == domain.RoleClient {
		return nil, ErrValidationFailed
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if email != user.Email {
		taken, err := s.emailInUse(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	user.Name = name
	user.Email = email
	user.Role = role
	user.Status = status

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) DeleteEmployee(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error {
	if !actor.IsStaff() {
		return ErrPermissionDenied
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if target.IsAdmin() && actor.Role != domain.RoleAdmin {
		return ErrPermissionDenied
	}

	// No cascade: attendance and workout history keep their copied names.
	return s.userRepo.Delete(ctx, id)
}

func (s *profileService) CreateCustomer(ctx context.Context, actor domain.Profile, name, email, password string, plan domain.MembershipPlan, amountPaid float64, expiryDate time.Time) (*domain.Customer, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	if name == "" || email == "" || password == "" || plan == "" {
		return nil, ErrValidationFailed
	}

	taken, err := s.emailInUse(ctx, email, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	customer := &domain.Customer{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hashed),
		Status:         domain.StatusActive,
		MembershipPlan: plan,
		AmountPaid:     amountPaid,
		ExpiryDate:     expiryDate,
	}

	id, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	customer.ID = id
	return customer, nil
}

func (s *profileService) ListCustomers(ctx context.Context, actor domain.Profile) ([]domain.Customer, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.customerRepo.List(ctx)
}

func (s *profileService) UpdateCustomer(ctx context.Context, actor domain.Profile, id primitive.ObjectID, name, email string, status domain.Status, plan domain.MembershipPlan, amountPaid float64, expiryDate time.Time) (*domain.Customer, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	if name == "" || email == "" {
		return nil, ErrValidationFailed
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if email != customer.Email {
		taken, err := s.emailInUse(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	customer.Name = name
	customer.Email = email
	customer.Status = status
	customer.MembershipPlan = plan
	customer.AmountPaid = amountPaid
	customer.ExpiryDate = expiryDate

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return customer, nil
}

func (s *profileService) DeleteCustomer(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error {
	if !actor.IsStaff() {
		return ErrPermissionDenied
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}
