package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/cloudsync"
	"github.com/gmiller1004/workhaven-server/internal/db"
	"github.com/gmiller1004/workhaven-server/internal/models"
)

// Pusher runs a cloud sync and reports the outcome.
type Pusher interface {
	Push(ctx context.Context) (*models.SyncLog, error)
}

// SyncHandler handles cloud sync requests
type SyncHandler struct {
	engine Pusher
	spots  db.SpotCollection
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(engine Pusher, spots db.SpotCollection) *SyncHandler {
	return &SyncHandler{engine: engine, spots: spots}
}

// HandlePush serves POST /api/sync/push
func (h *SyncHandler) HandlePush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.engine == nil {
		http.Error(w, "Cloud sync not configured", http.StatusServiceUnavailable)
		return
	}

	entry, err := h.engine.Push(r.Context())
	if err != nil {
		if errors.Is(err, cloudsync.ErrSyncInProgress) {
			http.Error(w, "Sync already in progress", http.StatusConflict)
			return
		}
		http.Error(w, "Sync failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// HandleChanges serves GET /api/sync/changes?since=<RFC3339>, returning spots
// modified after the given time so clients can catch up incrementally.
func (h *SyncHandler) HandleChanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	since := time.Time{}
	if s := r.URL.Query().Get("since"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			http.Error(w, "since must be RFC3339", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	spots, err := h.spots.FindSpotsModifiedSince(r.Context(), since)
	if err != nil {
		http.Error(w, "Failed to query changes", http.StatusInternalServerError)
		return
	}
	if spots == nil {
		spots = []models.Spot{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spots)
}
