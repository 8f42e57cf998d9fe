package db

import (
	"context"
	"os"
	"testing"

	"github.com/gmiller1004/workhaven-server/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestInsertSpot_NilCollection(t *testing.T) {
	coll := &MongoSpotCollection{Collection: nil}
	_, err := coll.InsertSpot(context.Background(), models.Spot{})
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestCountSpots_NilCollection(t *testing.T) {
	coll := &MongoSpotCollection{Collection: nil}
	_, err := coll.CountSpots(context.Background())
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestUpsertSpot_NilCollection(t *testing.T) {
	coll := &MongoSpotCollection{Collection: nil}
	_, err := coll.UpsertSpot(context.Background(), models.Spot{})
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestFindSpotByID_InvalidID(t *testing.T) {
	coll := &MongoSpotCollection{Collection: nil}
	_, err := coll.FindSpotByID(context.Background(), "not-a-hex-id")
	if err == nil {
		t.Error("expected error for invalid ID")
	}
}

func TestInsertPhoto_NilCollection(t *testing.T) {
	coll := &MongoPhotoCollection{Collection: nil}
	_, err := coll.InsertPhoto(context.Background(), models.SpotPhoto{})
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestLastSyncTime_NilCollection(t *testing.T) {
	coll := &MongoSyncLogCollection{Collection: nil}
	_, err := coll.LastSyncTime(context.Background(), "spots")
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}
