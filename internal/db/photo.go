package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPhotoCollection implements PhotoCollection for MongoDB.
type MongoPhotoCollection struct {
	Collection *mongo.Collection
}

// InsertPhoto inserts a spot photo record and returns its ID.
func (c *MongoPhotoCollection) InsertPhoto(ctx context.Context, photo models.SpotPhoto) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	photo.CreatedAt = time.Now()
	result, err := c.Collection.InsertOne(ctx, photo)
	if err != nil {
		return "", err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	return objectID.Hex(), nil
}

// FindPhotosBySpot returns all photos attached to a spot.
func (c *MongoPhotoCollection) FindPhotosBySpot(ctx context.Context, spotID string) ([]models.SpotPhoto, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{"spot_id": spotID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var photos []models.SpotPhoto
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// DeletePhoto deletes a photo record by its ID.
func (c *MongoPhotoCollection) DeletePhoto(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid photo ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("photo not found")
	}
	return nil
}
