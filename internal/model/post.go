package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PostStatus is the lifecycle state of a tutoring request.
type PostStatus string

const (
	PostStatusOpen    PostStatus = "open"
	PostStatusMatched PostStatus = "matched"
	PostStatusClosed  PostStatus = "closed"
	PostStatusHold    PostStatus = "hold"
)

// Valid reports whether the status is a member of the allowed transition set.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusOpen, PostStatusMatched, PostStatusClosed, PostStatusHold:
		return true
	}
	return false
}

// Post represents a tutoring request published by a guardian.
// Applicants holds the ObjectIDs of teachers with a live application.
type Post struct {
	ID         bson.ObjectID   `bson:"_id,omitempty"`
	PostID     string          `bson:"post_id"`
	GuardianID string          `bson:"guardian_id"`
	Subject    string          `bson:"subject"`
	Class      string          `bson:"class"`
	Board      string          `bson:"board"`
	Location   string          `bson:"location"`
	Budget     int64           `bson:"budget"`
	Details    string          `bson:"details,omitempty"`
	Status     PostStatus      `bson:"status"`
	Applicants []bson.ObjectID `bson:"applicants"`
	CreatedAt  time.Time       `bson:"created_at"`
	UpdatedAt  time.Time       `bson:"updated_at"`
}
