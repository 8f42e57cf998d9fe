package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSyncLogCollection implements SyncLogCollection for MongoDB.
type MongoSyncLogCollection struct {
	Collection *mongo.Collection
}

// InsertSyncLog records the outcome of a sync run.
func (c *MongoSyncLogCollection) InsertSyncLog(ctx context.Context, entry models.SyncLog) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if entry.SyncTimestamp.IsZero() {
		entry.SyncTimestamp = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, entry)
	return err
}

// LastSyncTime returns the timestamp of the most recent sync run for the
// given collection, or the zero time when no run has been recorded.
func (c *MongoSyncLogCollection) LastSyncTime(ctx context.Context, collection string) (time.Time, error) {
	if c.Collection == nil {
		return time.Time{}, fmt.Errorf("mongo collection is nil")
	}

	opts := options.FindOne().SetSort(bson.M{"sync_timestamp": -1})
	var entry models.SyncLog
	err := c.Collection.FindOne(ctx, bson.M{"collection": collection}, opts).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return entry.SyncTimestamp, nil
}
