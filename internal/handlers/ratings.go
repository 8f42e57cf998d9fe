package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gmiller1004/workhaven-server/internal/middleware"
	"github.com/gmiller1004/workhaven-server/internal/models"
)

// handleRatings serves /api/spots/{id}/ratings
func (h *SpotsHandler) handleRatings(w http.ResponseWriter, r *http.Request, spotID string) {
	switch r.Method {
	case http.MethodGet:
		h.listRatings(w, r, spotID)
	case http.MethodPost:
		h.createRating(w, r, spotID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SpotsHandler) createRating(w http.ResponseWriter, r *http.Request, spotID string) {
	if _, err := h.spots.FindSpotByID(r.Context(), spotID); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var rating models.UserRating
	if err := json.Unmarshal(body, &rating); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := rating.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rating.SpotID = spotID
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		rating.UserID = claims.UserID
	}

	id, err := h.ratings.InsertRating(r.Context(), rating)
	if err != nil {
		http.Error(w, "Failed to save rating", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// listRatings returns the ratings for a spot along with their summary.
func (h *SpotsHandler) listRatings(w http.ResponseWriter, r *http.Request, spotID string) {
	ratings, err := h.ratings.FindRatingsBySpot(r.Context(), spotID)
	if err != nil {
		http.Error(w, "Failed to query ratings", http.StatusInternalServerError)
		return
	}
	if ratings == nil {
		ratings = []models.UserRating{}
	}

	response := struct {
		Summary models.RatingSummary `json:"summary"`
		Ratings []models.UserRating  `json:"ratings"`
	}{
		Summary: models.SummarizeRatings(spotID, ratings),
		Ratings: ratings,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
