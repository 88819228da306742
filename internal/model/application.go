package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ApplicationStatus is the lifecycle state of a teacher's application to a post.
type ApplicationStatus string

const (
	ApplicationStatusPending             ApplicationStatus = "pending"
	ApplicationStatusApproved            ApplicationStatus = "approved"
	ApplicationStatusDeclined            ApplicationStatus = "declined"
	ApplicationStatusCompleted           ApplicationStatus = "completed"
	ApplicationStatusWithdrawalRequested ApplicationStatus = "withdrawal-requested"

	// ApplicationStatusWithdrawalApproving marks an approval in flight: the
	// claim succeeded but the dependent effects may not all have run yet.
	ApplicationStatusWithdrawalApproving ApplicationStatus = "withdrawal-approving"
)

// AssignableByAdmin reports whether the status may be set directly through
// the admin dashboard. The withdrawal statuses only move through the
// withdrawal request/approve lifecycle.
func (s ApplicationStatus) AssignableByAdmin() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved,
		ApplicationStatusDeclined, ApplicationStatusCompleted:
		return true
	}
	return false
}

// Withdrawal carries the metadata attached when a teacher asks to leave a post.
type Withdrawal struct {
	Note        string    `bson:"note,omitempty"`
	RequestedAt time.Time `bson:"requested_at"`
}

// Application links a Teacher to a Post. An application whose withdrawal is
// approved is deleted, not archived.
type Application struct {
	ID         bson.ObjectID     `bson:"_id,omitempty"`
	TeacherID  bson.ObjectID     `bson:"teacher_id"`
	PostID     bson.ObjectID     `bson:"post_id"`
	Status     ApplicationStatus `bson:"status"`
	AppliedAt  time.Time         `bson:"applied_at"`
	Withdrawal *Withdrawal       `bson:"withdrawal,omitempty"`
	CreatedAt  time.Time         `bson:"created_at"`
	UpdatedAt  time.Time         `bson:"updated_at"`
}
