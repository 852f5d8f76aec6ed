package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceType marks a punch direction.
type AttendanceType string

const (
	AttendanceIn  AttendanceType = "in"
	AttendanceOut AttendanceType = "out"
)

// Location is the geolocation captured at punch time.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// AttendanceRecord is one check-in or check-out event. Records are
// append-only; a mis-punch is corrected by a subsequent opposite punch.
// ProfileName is copied at write time so the record survives profile
// renames and deletes.
type AttendanceRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID   primitive.ObjectID `bson:"profileId" json:"profileId"`
	ProfileName string             `bson:"profileName" json:"profileName"`
	Type        AttendanceType     `bson:"type" json:"type"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Location    *Location          `bson:"location,omitempty" json:"location,omitempty"`
}

// Inverse returns the punch type that must follow this one.
func (t AttendanceType) Inverse() AttendanceType {
	if t == AttendanceIn {
		return AttendanceOut
	}
	return AttendanceIn
}
