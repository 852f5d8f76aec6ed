package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleEmployee     Role = "employee"
	RoleTrainer      Role = "trainer"
	RoleReceptionist Role = "receptionist"
	RoleClient       Role = "client"
)

// Status marks whether a profile may use the system.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User represents a staff member (admin, employee, trainer or receptionist).
// Gym clients live in their own collection, see Customer.
type User struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name            string              `bson:"name" json:"name"`
	Email           string              `bson:"email" json:"email"` // Should be unique
	PasswordHash    string              `bson:"passwordHash" json:"-"`
	Role            Role                `bson:"role" json:"role"`
	Status          Status              `bson:"status" json:"status"`
	StartDate       *time.Time          `bson:"startDate,omitempty" json:"startDate,omitempty"`
	ActiveRoutineID *primitive.ObjectID `bson:"activeRoutineId,omitempty" json:"activeRoutineId,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile is the role-scoped identity every service operation acts as.
// It is rebuilt from the JWT claims on each request; the canonical record
// stays in the employees or customers collection.
type Profile struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Role  Role
}

// IsStaff reports whether the profile may use the administrative surface.
// Any role other than client counts as staff.
func (p Profile) IsStaff() bool {
	return p.Role != RoleClient
}

func (p Profile) IsClient() bool {
	return p.Role == RoleClient
}

func (u *User) AsProfile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
