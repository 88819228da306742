package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SettingsKey is the fixed key of the singleton platform settings document.
const SettingsKey = "platform"

// Settings holds an opaque settings blob, read and written wholesale.
type Settings struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Key       string        `bson:"key"`
	Value     any           `bson:"value"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
