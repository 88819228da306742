package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Teacher represents a tutor profile on the tutorials application.
// TeacherID is the human-readable id shown in the UI and in admin search,
// distinct from the storage-assigned ObjectID.
type Teacher struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	TeacherID      string        `bson:"teacher_id"`
	UserID         string        `bson:"user_id"`
	Name           string        `bson:"name"`
	Email          string        `bson:"email"`
	Phone          string        `bson:"phone"`
	Location       string        `bson:"location"`
	Qualifications string        `bson:"qualifications"`
	Subjects       []string      `bson:"subjects,omitempty"`
	Experience     string        `bson:"experience,omitempty"`
	Bio            string        `bson:"bio,omitempty"`
	HourlyRate     int64         `bson:"hourly_rate,omitempty"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at"`
}
