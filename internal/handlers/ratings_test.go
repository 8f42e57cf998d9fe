package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gmiller1004/workhaven-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedSpot(spots *fakeSpotCollection) models.Spot {
	spot := models.Spot{
		ID:         primitive.NewObjectID(),
		Name:       "Ground Control Coffee",
		Address:    "123 SE Main St, Portland, OR",
		WifiRating: 4,
		NoiseLevel: models.NoiseModerate,
	}
	spots.spots[spot.ID.Hex()] = spot
	return spot
}

func TestSpotsHandler_CreateRating(t *testing.T) {
	handler, spots := newTestHandler()
	spot := seedSpot(spots)

	body, _ := json.Marshal(models.UserRating{WifiRating: 5, NoiseLevel: models.NoiseQuiet, Comment: "great"})
	req := httptest.NewRequest(http.MethodPost, "/api/spots/"+spot.ID.Hex()+"/ratings", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSpotsHandler_CreateRating_SpotMissing(t *testing.T) {
	handler, _ := newTestHandler()

	body, _ := json.Marshal(models.UserRating{WifiRating: 5})
	req := httptest.NewRequest(http.MethodPost, "/api/spots/"+primitive.NewObjectID().Hex()+"/ratings", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpotsHandler_CreateRating_Invalid(t *testing.T) {
	handler, spots := newTestHandler()
	spot := seedSpot(spots)

	body, _ := json.Marshal(models.UserRating{WifiRating: 11})
	req := httptest.NewRequest(http.MethodPost, "/api/spots/"+spot.ID.Hex()+"/ratings", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpotsHandler_ListRatings_WithSummary(t *testing.T) {
	handler, spots := newTestHandler()
	spot := seedSpot(spots)

	for _, rating := range []models.UserRating{
		{WifiRating: 4, NoiseLevel: models.NoiseQuiet},
		{WifiRating: 2, NoiseLevel: models.NoiseQuiet},
	} {
		body, _ := json.Marshal(rating)
		req := httptest.NewRequest(http.MethodPost, "/api/spots/"+spot.ID.Hex()+"/ratings", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		handler.HandleSpotByID(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/spots/"+spot.ID.Hex()+"/ratings", nil)
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Summary models.RatingSummary `json:"summary"`
		Ratings []models.UserRating  `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Summary.Count)
	assert.Equal(t, 3.0, response.Summary.AverageWifi)
	assert.Equal(t, models.NoiseQuiet, response.Summary.TypicalNoise)
	assert.Len(t, response.Ratings, 2)
}

func TestSpotsHandler_UploadPhoto(t *testing.T) {
	handler, spots := newTestHandler()
	spot := seedSpot(spots)

	payload := photoUploadRequest{
		Filename:    "Front Door.jpg",
		ContentType: "image/jpeg",
		Data:        base64.StdEncoding.EncodeToString([]byte("fake image bytes")),
		Caption:     "entrance",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/spots/"+spot.ID.Hex()+"/photos", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result["id"])
	assert.Contains(t, result["url"], "http://assets.local/")
}

func TestSpotsHandler_UploadPhoto_BadBase64(t *testing.T) {
	handler, spots := newTestHandler()
	spot := seedSpot(spots)

	body, _ := json.Marshal(photoUploadRequest{Filename: "x.jpg", Data: "%%% not base64 %%%"})
	req := httptest.NewRequest(http.MethodPost, "/api/spots/"+spot.ID.Hex()+"/photos", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpotsHandler_UploadPhoto_NoAssetStore(t *testing.T) {
	spots := newFakeSpotCollection()
	handler := NewSpotsHandler(spots, newFakeRatingCollection(), newFakePhotoCollection(), nil)
	spot := seedSpot(spots)

	body, _ := json.Marshal(photoUploadRequest{Filename: "x.jpg", Data: "aGk="})
	req := httptest.NewRequest(http.MethodPost, "/api/spots/"+spot.ID.Hex()+"/photos", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSpotsHandler_ListPhotos(t *testing.T) {
	handler, spots := newTestHandler()
	spot := seedSpot(spots)

	req := httptest.NewRequest(http.MethodGet, "/api/spots/"+spot.ID.Hex()+"/photos", nil)
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var photos []models.SpotPhoto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &photos))
	assert.Empty(t, photos)
}
