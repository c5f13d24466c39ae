package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment links a student to a course. At most one record exists per
// (user, course) pair, enforced by a unique compound index.
type Enrollment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id"`
	CourseID   primitive.ObjectID `bson:"course_id"`
	EnrolledAt time.Time          `bson:"enrolled_at"`
}
