package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpotPhoto represents a photo attached to a spot, stored in object storage.
type SpotPhoto struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SpotID     string             `json:"spot_id" bson:"spot_id"`
	ObjectKey  string             `json:"object_key" bson:"object_key"`
	URL        string             `json:"url" bson:"url"`
	Caption    string             `json:"caption" bson:"caption"`
	UploadedBy string             `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
