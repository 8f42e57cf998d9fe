// Package importer seeds an empty spot database with starter records,
// resolving their coordinates through the geocoder, and then triggers a
// cloud sync.
package importer

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/db"
	"github.com/gmiller1004/workhaven-server/internal/geocode"
	"github.com/gmiller1004/workhaven-server/internal/models"
	log "github.com/sirupsen/logrus"
)

var (
	ErrAlreadyImported  = errors.New("spot collection already seeded")
	ErrImportInProgress = errors.New("import already in progress")
)

// Geocoder resolves an address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocode.Result, error)
}

// Syncer pushes local records to the cloud mirror.
type Syncer interface {
	Push(ctx context.Context) (*models.SyncLog, error)
}

// DataImporter seeds the spot collection.
type DataImporter struct {
	spots    db.SpotCollection
	geocoder Geocoder
	syncer   Syncer // optional

	// GeocodeDelay is the pause between sequential geocoding calls,
	// honoring the public Nominatim usage policy of one request per second.
	GeocodeDelay time.Duration
	// SyncDelay is the pause between finishing the import and kicking off
	// the cloud sync.
	SyncDelay time.Duration

	running atomic.Bool
}

// New creates a data importer. The syncer may be nil to skip the post-import
// sync.
func New(spots db.SpotCollection, geocoder Geocoder, syncer Syncer) *DataImporter {
	return &DataImporter{
		spots:        spots,
		geocoder:     geocoder,
		syncer:       syncer,
		GeocodeDelay: time.Second,
		SyncDelay:    2 * time.Second,
	}
}

// Run seeds the database when it is empty. A populated collection makes the
// run a no-op (ErrAlreadyImported), so repeated invocations are safe.
func (i *DataImporter) Run(ctx context.Context) error {
	if !i.running.CompareAndSwap(false, true) {
		return ErrImportInProgress
	}
	defer i.running.Store(false)

	count, err := i.spots.CountSpots(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.WithField("count", count).Info("Spot collection already has records, skipping import")
		return ErrAlreadyImported
	}

	log.WithField("seeds", len(seedSpots)).Info("Importing seed spots")

	for idx, seed := range seedSpots {
		spot := seed
		spot.LastModified = time.Now()

		result, err := i.geocoder.Geocode(ctx, spot.Address)
		if err != nil {
			// No retry: the spot keeps zero coordinates and can be
			// re-geocoded on a later edit.
			log.WithField("address", spot.Address).Warnf("Geocoding failed: %v", err)
		} else {
			spot.Location = models.Location{Lat: result.Lat, Lon: result.Lon}
		}

		id, err := i.spots.InsertSpot(ctx, spot)
		if err != nil {
			log.WithField("name", spot.Name).Errorf("Failed to insert seed spot: %v", err)
			continue
		}

		log.WithFields(log.Fields{
			"spot_id":  id,
			"name":     spot.Name,
			"geocoded": spot.Geocoded(),
		}).Info("Seed spot imported")

		// Pause between geocoding calls, except after the last seed.
		if idx < len(seedSpots)-1 {
			if err := sleepCtx(ctx, i.GeocodeDelay); err != nil {
				return err
			}
		}
	}

	if i.syncer == nil {
		return nil
	}

	if err := sleepCtx(ctx, i.SyncDelay); err != nil {
		return err
	}

	if _, err := i.syncer.Push(ctx); err != nil {
		log.Errorf("Post-import sync failed: %v", err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
