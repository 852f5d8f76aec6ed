package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipPlan is the tier a customer pays for.
type MembershipPlan string

const (
	PlanBasico MembershipPlan = "basico"
	PlanPro    MembershipPlan = "pro"
	PlanVIP    MembershipPlan = "vip"
)

// Customer represents a gym client. Customers authenticate like staff but
// carry membership data and the pointer to their currently active routine.
// That pointer is the single source of truth: nothing else in the system
// duplicates it.
type Customer struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name             string              `bson:"name" json:"name"`
	Email            string              `bson:"email" json:"email"` // Should be unique
	PasswordHash     string              `bson:"passwordHash" json:"-"`
	Status           Status              `bson:"status" json:"status"`
	RegistrationDate time.Time           `bson:"registrationDate" json:"registrationDate"`
	MembershipPlan   MembershipPlan      `bson:"membershipType" json:"membershipType"`
	AmountPaid       float64             `bson:"amountPaid" json:"amountPaid"`
	ExpiryDate       time.Time           `bson:"expiryDate" json:"expiryDate"`
	ActiveRoutineID  *primitive.ObjectID `bson:"activeRoutineId,omitempty" json:"activeRoutineId,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (c *Customer) AsProfile() Profile {
	return Profile{ID: c.ID, Name: c.Name, Email: c.Email, Role: RoleClient}
}
