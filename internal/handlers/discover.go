package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gmiller1004/workhaven-server/internal/discovery"
	"github.com/gmiller1004/workhaven-server/internal/models"
)

// PlaceSearcher finds candidate places near a coordinate.
type PlaceSearcher interface {
	Search(ctx context.Context, lat, lon float64, radiusMeters int) ([]discovery.Place, error)
}

// DiscoverHandler proxies the third-party place discovery API
type DiscoverHandler struct {
	client PlaceSearcher
}

// NewDiscoverHandler creates a new discovery handler
func NewDiscoverHandler(client PlaceSearcher) *DiscoverHandler {
	return &DiscoverHandler{client: client}
}

// HandleDiscover serves GET /api/discover?lat=&lon=&radius_m=
func (h *DiscoverHandler) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
		return
	}

	radius := 1000
	if s := r.URL.Query().Get("radius_m"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed <= 0 {
			http.Error(w, "radius_m must be a positive integer", http.StatusBadRequest)
			return
		}
		radius = parsed
	}

	places, err := h.client.Search(r.Context(), lat, lon, radius)
	if err != nil {
		if errors.Is(err, discovery.ErrMissingAPIKey) {
			http.Error(w, "Places API key not configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Place search failed", http.StatusBadGateway)
		return
	}

	drafts := make([]models.Spot, 0, len(places))
	for _, place := range places {
		drafts = append(drafts, place.ToSpotDraft())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(drafts)
}
