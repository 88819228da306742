package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserRole identifies which sub-application a user belongs to.
type UserRole string

const (
	RoleTeacher    UserRole = "teacher"
	RoleGuardian   UserRole = "guardian"
	RoleFreelancer UserRole = "freelancer"
	RoleClient     UserRole = "client"
)

// Valid reports whether the role is one of the four platform roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleTeacher, RoleGuardian, RoleFreelancer, RoleClient:
		return true
	}
	return false
}

// EmailDelivery tracks the delivery health of a user's email address.
// It is written by the bounce webhook and never cleared automatically.
type EmailDelivery struct {
	Bounced   bool       `bson:"bounced"`
	Reason    string     `bson:"reason,omitempty"`
	BouncedAt *time.Time `bson:"bounced_at,omitempty"`
}

// User represents an identity record shared by all sub-applications.
// Users are never hard-deleted; deactivation flips Active instead.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	PasswordHash  string        `bson:"password_hash"`
	Role          UserRole      `bson:"role"`
	Active        bool          `bson:"active"`
	EmailDelivery EmailDelivery `bson:"email_delivery"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}
