package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress records how far a student has advanced through a course.
// Percentage stays within [0,100]; IsCompleted is derived, true iff 100.
type Progress struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	CourseID    primitive.ObjectID `bson:"course_id"`
	Percentage  int                `bson:"progress"`
	IsCompleted bool               `bson:"is_completed"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}
