package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AdStatus is derived from the ad's date bounds; the stored value is a cached
// copy of the derivation, not ground truth.
type AdStatus string

const (
	AdStatusScheduled AdStatus = "scheduled"
	AdStatusActive    AdStatus = "active"
	AdStatusExpired   AdStatus = "expired"
)

// Ad represents a display advertisement with optional scheduling bounds and
// lifetime impression/click counters.
type Ad struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	ImageURL    string        `bson:"image_url"`
	TargetURL   string        `bson:"target_url"`
	Placement   string        `bson:"placement"`
	StartDate   *time.Time    `bson:"start_date,omitempty"`
	EndDate     *time.Time    `bson:"end_date,omitempty"`
	Status      AdStatus      `bson:"status"`
	Impressions int64         `bson:"impressions"`
	Clicks      int64         `bson:"clicks"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

// AdAnalytics is one counter document per (ad, UTC day), incremented via upsert.
type AdAnalytics struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	AdID        bson.ObjectID `bson:"ad_id"`
	Day         string        `bson:"day"`
	Impressions int64         `bson:"impressions"`
	Clicks      int64         `bson:"clicks"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
