package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single movement in the catalog. There is no update
// operation: entries are created and deleted only.
type Exercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Category   string             `bson:"category" json:"category"`
	AuthorID   primitive.ObjectID `bson:"authorId" json:"authorId"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	IsPublic   bool               `bson:"isPublic" json:"isPublic"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// VisibleTo reports whether a viewer may see this exercise in the catalog.
func (e *Exercise) VisibleTo(viewerID primitive.ObjectID) bool {
	return e.IsPublic || e.AuthorID == viewerID
}
