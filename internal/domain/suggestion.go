package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Suggestion is free-text feedback a customer left, shown on the
// dashboard and fed to the insight generator. Read-only after creation.
type Suggestion struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID   primitive.ObjectID `bson:"customerId" json:"customerId"`
	CustomerName string             `bson:"customerName" json:"customerName"`
	Text         string             `bson:"text" json:"text"`
	Category     string             `bson:"category" json:"category"`
	Date         time.Time          `bson:"date" json:"date"`
}
