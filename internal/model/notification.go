package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NotificationStatus mirrors the withdrawal lifecycle of the application it
// was created for.
type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "pending"
	NotificationStatusApproved NotificationStatus = "approved"
)

// AdminNotification is an admin-inbox record created when a teacher requests
// withdrawal from a post.
type AdminNotification struct {
	ID            bson.ObjectID      `bson:"_id,omitempty"`
	Type          string             `bson:"type"`
	ApplicationID bson.ObjectID      `bson:"application_id"`
	TeacherID     bson.ObjectID      `bson:"teacher_id"`
	PostID        bson.ObjectID      `bson:"post_id"`
	Note          string             `bson:"note,omitempty"`
	Status        NotificationStatus `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// NotificationTypeWithdrawal is the only notification type currently emitted.
const NotificationTypeWithdrawal = "withdrawal_request"
