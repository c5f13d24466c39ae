package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role enumerates access levels a user may hold.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record for anyone interacting with the platform.
// Email is unique at the store; role is only settable through the admin
// creation path.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         Role               `bson:"role"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	DateOfBirth  *time.Time         `bson:"date_of_birth,omitempty"`
	PhoneNumber  string             `bson:"phone_number,omitempty"`
	Address      string             `bson:"address,omitempty"`
	Gender       string             `bson:"gender,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}
