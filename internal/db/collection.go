package db

import (
	"context"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/models"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SpotCollection defines the interface for spot data operations.
type SpotCollection interface {
	InsertSpot(ctx context.Context, spot models.Spot) (string, error)
	FindSpots(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (SpotCursor, error)
	FindSpotByID(ctx context.Context, id string) (*models.Spot, error)
	UpdateSpot(ctx context.Context, id string, spot models.Spot) error
	DeleteSpot(ctx context.Context, id string) error
	CountSpots(ctx context.Context) (int64, error)
	UpsertSpot(ctx context.Context, spot models.Spot) (bool, error)
	FindSpotsModifiedSince(ctx context.Context, since time.Time) ([]models.Spot, error)
}

// SpotCursor defines the interface for spot cursor operations.
type SpotCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}

// PhotoCollection defines the interface for spot photo operations.
type PhotoCollection interface {
	InsertPhoto(ctx context.Context, photo models.SpotPhoto) (string, error)
	FindPhotosBySpot(ctx context.Context, spotID string) ([]models.SpotPhoto, error)
	DeletePhoto(ctx context.Context, id string) error
}

// RatingCollection defines the interface for user rating operations.
type RatingCollection interface {
	InsertRating(ctx context.Context, rating models.UserRating) (string, error)
	FindRatingsBySpot(ctx context.Context, spotID string) ([]models.UserRating, error)
}

// SyncLogCollection defines the interface for sync log operations.
type SyncLogCollection interface {
	InsertSyncLog(ctx context.Context, entry models.SyncLog) error
	LastSyncTime(ctx context.Context, collection string) (time.Time, error)
}
