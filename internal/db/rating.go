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

// MongoRatingCollection implements RatingCollection for MongoDB.
type MongoRatingCollection struct {
	Collection *mongo.Collection
}

// InsertRating inserts a user rating record and returns its ID.
func (c *MongoRatingCollection) InsertRating(ctx context.Context, rating models.UserRating) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	rating.CreatedAt = time.Now()
	result, err := c.Collection.InsertOne(ctx, rating)
	if err != nil {
		return "", err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	return objectID.Hex(), nil
}

// FindRatingsBySpot returns all ratings submitted for a spot.
func (c *MongoRatingCollection) FindRatingsBySpot(ctx context.Context, spotID string) ([]models.UserRating, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{"spot_id": spotID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []models.UserRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
