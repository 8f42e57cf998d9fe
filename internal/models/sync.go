package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncLog records the outcome of a single cloud sync run.
type SyncLog struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Collection    string             `json:"collection" bson:"collection"`
	SyncTimestamp time.Time          `json:"sync_timestamp" bson:"sync_timestamp"`
	RecordsPushed int                `json:"records_pushed" bson:"records_pushed"`
	RecordsPulled int                `json:"records_pulled" bson:"records_pulled"`
	Errors        int                `json:"errors" bson:"errors"`
}

// SpotChange is the payload published for each record that changed during a
// sync run. Subscribers use it to refresh their local copy.
type SpotChange struct {
	SpotID       string    `json:"spot_id"`
	Name         string    `json:"name"`
	Action       string    `json:"action"` // "pushed" or "pulled"
	LastModified time.Time `json:"last_modified"`
}
