package main

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/gmiller1004/workhaven-server/internal/cloudsync"
	"github.com/gmiller1004/workhaven-server/internal/db"
	"github.com/gmiller1004/workhaven-server/internal/env"
	"github.com/gmiller1004/workhaven-server/internal/geocode"
	"github.com/gmiller1004/workhaven-server/internal/graceful"
	"github.com/gmiller1004/workhaven-server/internal/importer"
	"github.com/gmiller1004/workhaven-server/internal/notify"
	"github.com/gmiller1004/workhaven-server/internal/storage"
)

// Seeds the spot collection with a curated starter set, geocoding each
// address, then pushes the records to the cloud mirror. Safe to run more than
// once: a populated collection is left untouched.
func main() {
	env.LoadEnv()

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Errorf("Failed to disconnect from MongoDB: %v", err)
		}
	}()

	database := client.Database(env.GetEnv("MONGO_DB", "workhaven"))
	spots := &db.MongoSpotCollection{Collection: database.Collection("spots")}
	syncLogs := &db.MongoSyncLogCollection{Collection: database.Collection("sync_logs")}

	var syncer importer.Syncer
	if s3, err := storage.NewS3Service(); err != nil {
		log.Warnf("Object storage unavailable, skipping post-import sync: %v", err)
	} else {
		if err := s3.EnsureBucket(ctx, ""); err != nil {
			log.Fatalf("Failed to ensure bucket: %v", err)
		}

		var notifier cloudsync.Notifier
		if mq, err := notify.NewMQTTNotifier("workhaven-importer"); err != nil {
			log.Warnf("Change notifications disabled: %v", err)
		} else {
			notifier = mq
			defer mq.Close()
		}

		syncer = cloudsync.NewEngine(spots, syncLogs, s3, notifier)
	}

	imp := importer.New(spots, geocode.NewClient(), syncer)
	if err := imp.Run(ctx); err != nil {
		if errors.Is(err, importer.ErrAlreadyImported) {
			log.Info("Nothing to do")
			return
		}
		log.Fatalf("Import failed: %v", err)
	}
	log.Info("Import complete")
}
