// Package cloudsync mirrors local spot records to the cloud record store and
// resolves concurrent edits by last-write-wins on the record timestamp.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/db"
	"github.com/gmiller1004/workhaven-server/internal/models"
	"github.com/gmiller1004/workhaven-server/internal/storage"
	log "github.com/sirupsen/logrus"
)

var ErrSyncInProgress = errors.New("sync already in progress")

// RecordStore is the remote mirror of spot records.
type RecordStore interface {
	FetchSpot(ctx context.Context, id string) (*models.Spot, error)
	StoreSpot(ctx context.Context, spot models.Spot) error
}

// Notifier publishes a change event for each record written during a run.
type Notifier interface {
	PublishChange(change models.SpotChange) error
}

// Engine coordinates sync runs between the local spot collection and the
// remote record store.
type Engine struct {
	spots    db.SpotCollection
	syncLogs db.SyncLogCollection
	store    RecordStore
	notifier Notifier // optional

	mu sync.Mutex // serializes runs; concurrent callers get ErrSyncInProgress
}

// NewEngine creates a sync engine. The notifier may be nil, in which case no
// change events are published.
func NewEngine(spots db.SpotCollection, syncLogs db.SyncLogCollection, store RecordStore, notifier Notifier) *Engine {
	return &Engine{
		spots:    spots,
		syncLogs: syncLogs,
		store:    store,
		notifier: notifier,
	}
}

// Push syncs all spots modified since the last recorded run. Per record:
// a missing remote copy is uploaded; a newer remote copy wins and is upserted
// locally; otherwise the local copy overwrites the remote. Per-record
// failures are logged and counted, not retried.
func (e *Engine) Push(ctx context.Context) (*models.SyncLog, error) {
	if !e.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer e.mu.Unlock()

	since, err := e.syncLogs.LastSyncTime(ctx, "spots")
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync time: %w", err)
	}

	changed, err := e.spots.FindSpotsModifiedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list modified spots: %w", err)
	}

	entry := models.SyncLog{
		Collection:    "spots",
		SyncTimestamp: time.Now(),
	}

	for _, local := range changed {
		action, err := e.syncOne(ctx, local)
		if err != nil {
			log.WithFields(log.Fields{
				"spot_id": local.ID.Hex(),
				"name":    local.Name,
			}).Errorf("Sync failed for spot: %v", err)
			entry.Errors++
			continue
		}

		switch action {
		case "pushed":
			entry.RecordsPushed++
		case "pulled":
			entry.RecordsPulled++
		}

		e.publish(local, action)
	}

	if err := e.syncLogs.InsertSyncLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record sync run: %w", err)
	}

	log.WithFields(log.Fields{
		"pushed": entry.RecordsPushed,
		"pulled": entry.RecordsPulled,
		"errors": entry.Errors,
	}).Info("Sync run completed")

	return &entry, nil
}

// syncOne resolves a single record against its remote copy and reports which
// direction won.
func (e *Engine) syncOne(ctx context.Context, local models.Spot) (string, error) {
	remote, err := e.store.FetchSpot(ctx, local.ID.Hex())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if err := e.store.StoreSpot(ctx, local); err != nil {
				return "", err
			}
			return "pushed", nil
		}
		return "", err
	}

	// Last write wins on the record timestamp.
	if remote.LastModified.After(local.LastModified) {
		if _, err := e.spots.UpsertSpot(ctx, *remote); err != nil {
			return "", err
		}
		return "pulled", nil
	}

	if err := e.store.StoreSpot(ctx, local); err != nil {
		return "", err
	}
	return "pushed", nil
}

func (e *Engine) publish(spot models.Spot, action string) {
	if e.notifier == nil {
		return
	}
	change := models.SpotChange{
		SpotID:       spot.ID.Hex(),
		Name:         spot.Name,
		Action:       action,
		LastModified: spot.LastModified,
	}
	if err := e.notifier.PublishChange(change); err != nil {
		log.Errorf("Failed to publish change for spot %s: %v", change.SpotID, err)
	}
}
