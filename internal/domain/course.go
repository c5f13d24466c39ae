package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a learning resource owned by the instructor who created it.
// Ownership (the instructor email) gates mutation.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category,omitempty"`
	Instructor  string             `bson:"instructor"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// CoursePatch carries optional fields for a partial course update.
type CoursePatch struct {
	Title       *string
	Description *string
	Category    *string
}
