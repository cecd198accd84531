package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session represents one drowsiness-monitoring drive reported by a client device.
// SessionID is the client supplied identifier and is not unique; ID is assigned by the store.
type Session struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	SessionID       string        `bson:"id"`
	UserID          *string       `bson:"user_id"`
	StartedAt       int64         `bson:"startedAt"`
	DurationSec     int64         `bson:"durationSec"`
	Alerts          int64         `bson:"alerts"`
	Sensitivity     string        `bson:"sensitivity"`
	AvgEAR          *float64      `bson:"avgEar"`
	DeviceConnected *bool         `bson:"deviceConnected"`
	CreatedAt       time.Time     `bson:"createdAt"`
}
