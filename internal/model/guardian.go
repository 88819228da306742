package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Guardian represents a parent/guardian profile on the tutorials application.
type Guardian struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	GuardianID string        `bson:"guardian_id"`
	UserID     string        `bson:"user_id"`
	Name       string        `bson:"name"`
	Email      string        `bson:"email"`
	Phone      string        `bson:"phone"`
	Location   string        `bson:"location"`
	CreatedAt  time.Time     `bson:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at"`
}
