package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Admin represents a dashboard operator account.
type Admin struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	Name         string        `bson:"name"`
	PasswordHash string        `bson:"password_hash"`
	Role         string        `bson:"role"`
	Permissions  []string      `bson:"permissions"`
	Active       bool          `bson:"active"`
	LastLogin    time.Time     `bson:"last_login"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

// HasPermission reports whether the admin holds the named capability.
// The wildcard "*" grants everything.
func (a *Admin) HasPermission(name string) bool {
	for _, p := range a.Permissions {
		if p == name || p == "*" {
			return true
		}
	}
	return false
}
