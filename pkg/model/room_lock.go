package model

import "time"

// RoomLock is an advisory lock serializing availability check and insert
// for a single room. The lock lives in its own collection with the room ID
// as _id, so a concurrent acquire fails with a duplicate key error. ExpiresAt
// backs a TTL index that reaps locks leaked by crashed processes.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    string    `bson:"room_id" json:"room_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
