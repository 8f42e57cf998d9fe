package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gmiller1004/workhaven-server/internal/middleware"
	"github.com/gmiller1004/workhaven-server/internal/models"
)

// photoUploadRequest carries a base64-encoded image for a spot.
type photoUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64
	Caption     string `json:"caption"`
}

// handlePhotos serves /api/spots/{id}/photos
func (h *SpotsHandler) handlePhotos(w http.ResponseWriter, r *http.Request, spotID string) {
	switch r.Method {
	case http.MethodGet:
		h.listPhotos(w, r, spotID)
	case http.MethodPost:
		h.uploadPhoto(w, r, spotID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SpotsHandler) uploadPhoto(w http.ResponseWriter, r *http.Request, spotID string) {
	if h.assets == nil {
		http.Error(w, "Photo storage not configured", http.StatusServiceUnavailable)
		return
	}

	if _, err := h.spots.FindSpotByID(r.Context(), spotID); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req photoUploadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Filename == "" || req.Data == "" {
		http.Error(w, "filename and data are required", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		http.Error(w, "data must be base64 encoded", http.StatusBadRequest)
		return
	}

	objectKey, err := h.assets.StorePhoto(r.Context(), spotID, req.Filename, req.ContentType, data)
	if err != nil {
		http.Error(w, "Failed to store photo", http.StatusInternalServerError)
		return
	}

	photo := models.SpotPhoto{
		SpotID:    spotID,
		ObjectKey: objectKey,
		URL:       h.assets.PhotoURL(objectKey),
		Caption:   req.Caption,
	}
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		photo.UploadedBy = claims.UserID
	}

	id, err := h.photos.InsertPhoto(r.Context(), photo)
	if err != nil {
		http.Error(w, "Failed to save photo record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id, "url": photo.URL})
}

func (h *SpotsHandler) listPhotos(w http.ResponseWriter, r *http.Request, spotID string) {
	photos, err := h.photos.FindPhotosBySpot(r.Context(), spotID)
	if err != nil {
		http.Error(w, "Failed to query photos", http.StatusInternalServerError)
		return
	}
	if photos == nil {
		photos = []models.SpotPhoto{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(photos)
}
