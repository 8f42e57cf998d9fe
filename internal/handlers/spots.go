package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/db"
	"github.com/gmiller1004/workhaven-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// SpotsHandler handles spot CRUD and query requests
type SpotsHandler struct {
	spots   db.SpotCollection
	ratings db.RatingCollection
	photos  db.PhotoCollection
	assets  AssetStore // optional; photo uploads fail without it
}

// AssetStore stores photo bytes and resolves their public URLs.
type AssetStore interface {
	StorePhoto(ctx context.Context, spotID, filename, contentType string, data []byte) (string, error)
	PhotoURL(objectKey string) string
}

// NewSpotsHandler creates a new spots handler
func NewSpotsHandler(spots db.SpotCollection, ratings db.RatingCollection, photos db.PhotoCollection, assets AssetStore) *SpotsHandler {
	return &SpotsHandler{
		spots:   spots,
		ratings: ratings,
		photos:  photos,
		assets:  assets,
	}
}

// HandleSpots serves the /api/spots collection endpoint
func (h *SpotsHandler) HandleSpots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSpots(w, r)
	case http.MethodPost:
		h.createSpot(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSpotByID serves /api/spots/{id} and the ratings/photos subresources
func (h *SpotsHandler) HandleSpotByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/spots/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Spot ID required", http.StatusBadRequest)
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getSpot(w, r, id)
		case http.MethodPut:
			h.updateSpot(w, r, id)
		case http.MethodDelete:
			h.deleteSpot(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "ratings":
		h.handleRatings(w, r, id)
	case "photos":
		h.handlePhotos(w, r, id)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (h *SpotsHandler) createSpot(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var spot models.Spot
	if err := json.Unmarshal(body, &spot); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := spot.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	spot.LastModified = time.Now()
	id, err := h.spots.InsertSpot(r.Context(), spot)
	if err != nil {
		http.Error(w, "Failed to create spot", http.StatusInternalServerError)
		return
	}

	created, err := h.spots.FindSpotByID(r.Context(), id)
	if err != nil {
		// The record exists; fall back to echoing the input with its ID.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "name": spot.Name})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// listSpots supports filtering by name substring, minimum wifi rating, noise
// level, outlet availability, modification time, and proximity.
func (h *SpotsHandler) listSpots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := bson.M{}

	if q := query.Get("q"); q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}
	if minWifi := query.Get("min_wifi"); minWifi != "" {
		n, err := strconv.Atoi(minWifi)
		if err != nil || n < 1 || n > 5 {
			http.Error(w, "min_wifi must be an integer between 1 and 5", http.StatusBadRequest)
			return
		}
		filter["wifi_rating"] = bson.M{"$gte": n}
	}
	if noise := query.Get("noise"); noise != "" {
		if !models.IsValidNoiseLevel(models.NoiseLevel(noise)) {
			http.Error(w, "Invalid noise level", http.StatusBadRequest)
			return
		}
		filter["noise_level"] = noise
	}
	if query.Get("outlets") == "true" {
		filter["has_outlets"] = true
	}
	if since := query.Get("modified_since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			http.Error(w, "modified_since must be RFC3339", http.StatusBadRequest)
			return
		}
		filter["last_modified"] = bson.M{"$gt": t}
	}

	cursor, err := h.spots.FindSpots(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to query spots", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var spots []models.Spot
	if err := cursor.All(r.Context(), &spots); err != nil {
		http.Error(w, "Failed to decode spots", http.StatusInternalServerError)
		return
	}

	// Proximity filtering happens after the database query.
	if query.Get("lat") != "" && query.Get("lon") != "" {
		lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(query.Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			http.Error(w, "Invalid lat/lon", http.StatusBadRequest)
			return
		}
		radiusKm := 5.0
		if radius := query.Get("radius_km"); radius != "" {
			parsed, err := strconv.ParseFloat(radius, 64)
			if err != nil || parsed <= 0 {
				http.Error(w, "radius_km must be a positive number", http.StatusBadRequest)
				return
			}
			radiusKm = parsed
		}

		center := models.Location{Lat: lat, Lon: lon}
		var nearby []models.Spot
		for _, spot := range spots {
			if spot.Geocoded() && center.DistanceKm(spot.Location) <= radiusKm {
				nearby = append(nearby, spot)
			}
		}
		spots = nearby
	}

	if spots == nil {
		spots = []models.Spot{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spots)
}

func (h *SpotsHandler) getSpot(w http.ResponseWriter, r *http.Request, id string) {
	spot, err := h.spots.FindSpotByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spot)
}

func (h *SpotsHandler) updateSpot(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var spot models.Spot
	if err := json.Unmarshal(body, &spot); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := spot.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.spots.UpdateSpot(r.Context(), id, spot); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Spot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update spot", http.StatusInternalServerError)
		return
	}

	updated, err := h.spots.FindSpotByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *SpotsHandler) deleteSpot(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.spots.DeleteSpot(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Spot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete spot", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
