package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/db"
	"github.com/gmiller1004/workhaven-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// In-memory fakes shared across the handler tests.

type fakeSpotCursor struct {
	spots []models.Spot
}

func (c *fakeSpotCursor) All(ctx context.Context, out interface{}) error {
	ptr, ok := out.(*[]models.Spot)
	if !ok {
		return fmt.Errorf("unexpected output type %T", out)
	}
	*ptr = c.spots
	return nil
}

func (c *fakeSpotCursor) Close(ctx context.Context) error { return nil }

type fakeSpotCollection struct {
	spots      map[string]models.Spot
	lastFilter bson.M
	findErr    error
	insertErr  error
}

func newFakeSpotCollection() *fakeSpotCollection {
	return &fakeSpotCollection{spots: make(map[string]models.Spot)}
}

func (f *fakeSpotCollection) InsertSpot(ctx context.Context, spot models.Spot) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	spot.ID = primitive.NewObjectID()
	if spot.CreatedAt.IsZero() {
		spot.CreatedAt = time.Now()
	}
	f.spots[spot.ID.Hex()] = spot
	return spot.ID.Hex(), nil
}

func (f *fakeSpotCollection) FindSpots(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (db.SpotCursor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if m, ok := filter.(bson.M); ok {
		f.lastFilter = m
	}
	var all []models.Spot
	for _, spot := range f.spots {
		all = append(all, spot)
	}
	return &fakeSpotCursor{spots: all}, nil
}

func (f *fakeSpotCollection) FindSpotByID(ctx context.Context, id string) (*models.Spot, error) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, errors.New("spot not found")
	}
	return &spot, nil
}

func (f *fakeSpotCollection) UpdateSpot(ctx context.Context, id string, spot models.Spot) error {
	existing, ok := f.spots[id]
	if !ok {
		return errors.New("spot not found")
	}
	spot.ID = existing.ID
	spot.LastModified = time.Now()
	f.spots[id] = spot
	return nil
}

func (f *fakeSpotCollection) DeleteSpot(ctx context.Context, id string) error {
	if _, ok := f.spots[id]; !ok {
		return errors.New("spot not found")
	}
	delete(f.spots, id)
	return nil
}

func (f *fakeSpotCollection) CountSpots(ctx context.Context) (int64, error) {
	return int64(len(f.spots)), nil
}

func (f *fakeSpotCollection) UpsertSpot(ctx context.Context, spot models.Spot) (bool, error) {
	if spot.ID.IsZero() {
		spot.ID = primitive.NewObjectID()
	}
	f.spots[spot.ID.Hex()] = spot
	return true, nil
}

func (f *fakeSpotCollection) FindSpotsModifiedSince(ctx context.Context, since time.Time) ([]models.Spot, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Spot
	for _, spot := range f.spots {
		if spot.LastModified.After(since) {
			out = append(out, spot)
		}
	}
	return out, nil
}

type fakeRatingCollection struct {
	ratings map[string][]models.UserRating
}

func newFakeRatingCollection() *fakeRatingCollection {
	return &fakeRatingCollection{ratings: make(map[string][]models.UserRating)}
}

func (f *fakeRatingCollection) InsertRating(ctx context.Context, rating models.UserRating) (string, error) {
	rating.ID = primitive.NewObjectID()
	f.ratings[rating.SpotID] = append(f.ratings[rating.SpotID], rating)
	return rating.ID.Hex(), nil
}

func (f *fakeRatingCollection) FindRatingsBySpot(ctx context.Context, spotID string) ([]models.UserRating, error) {
	return f.ratings[spotID], nil
}

type fakePhotoCollection struct {
	photos map[string][]models.SpotPhoto
}

func newFakePhotoCollection() *fakePhotoCollection {
	return &fakePhotoCollection{photos: make(map[string][]models.SpotPhoto)}
}

func (f *fakePhotoCollection) InsertPhoto(ctx context.Context, photo models.SpotPhoto) (string, error) {
	photo.ID = primitive.NewObjectID()
	f.photos[photo.SpotID] = append(f.photos[photo.SpotID], photo)
	return photo.ID.Hex(), nil
}

func (f *fakePhotoCollection) FindPhotosBySpot(ctx context.Context, spotID string) ([]models.SpotPhoto, error) {
	return f.photos[spotID], nil
}

func (f *fakePhotoCollection) DeletePhoto(ctx context.Context, id string) error { return nil }

type fakeAssetStore struct {
	stored map[string][]byte
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{stored: make(map[string][]byte)}
}

func (f *fakeAssetStore) StorePhoto(ctx context.Context, spotID, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("photos/%s/%s", spotID, filename)
	f.stored[key] = data
	return key, nil
}

func (f *fakeAssetStore) PhotoURL(objectKey string) string {
	return "http://assets.local/" + objectKey
}

func newTestHandler() (*SpotsHandler, *fakeSpotCollection) {
	spots := newFakeSpotCollection()
	handler := NewSpotsHandler(spots, newFakeRatingCollection(), newFakePhotoCollection(), newFakeAssetStore())
	return handler, spots
}

func validSpotBody() []byte {
	data, _ := json.Marshal(models.Spot{
		Name:       "Ground Control Coffee",
		Address:    "123 SE Main St, Portland, OR",
		WifiRating: 4,
		NoiseLevel: models.NoiseModerate,
		HasOutlets: true,
	})
	return data
}

func TestSpotsHandler_Create(t *testing.T) {
	handler, spots := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/spots", bytes.NewBuffer(validSpotBody()))
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, spots.spots, 1)

	var created models.Spot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Ground Control Coffee", created.Name)
	assert.False(t, created.LastModified.IsZero())
}

func TestSpotsHandler_Create_InvalidJSON(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/spots", bytes.NewBuffer([]byte("{bad json")))
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpotsHandler_Create_ValidationFailure(t *testing.T) {
	handler, _ := newTestHandler()

	body, _ := json.Marshal(models.Spot{Name: "No Address", WifiRating: 3, NoiseLevel: models.NoiseQuiet})
	req := httptest.NewRequest(http.MethodPost, "/api/spots", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpotsHandler_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/spots", nil)
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSpotsHandler_List_BuildsFilter(t *testing.T) {
	handler, spots := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/spots?min_wifi=4&noise=quiet&outlets=true&q=coffee", nil)
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	filter := spots.lastFilter
	assert.Equal(t, bson.M{"$gte": 4}, filter["wifi_rating"])
	assert.Equal(t, "quiet", filter["noise_level"])
	assert.Equal(t, true, filter["has_outlets"])
	assert.Equal(t, bson.M{"$regex": "coffee", "$options": "i"}, filter["name"])
}

func TestSpotsHandler_List_InvalidMinWifi(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/spots?min_wifi=9", nil)
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpotsHandler_List_InvalidNoise(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/spots?noise=silent", nil)
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpotsHandler_List_NearFilter(t *testing.T) {
	handler, spots := newTestHandler()

	portland := models.Spot{
		ID: primitive.NewObjectID(), Name: "Portland Cafe", Address: "a",
		Location: models.Location{Lat: 45.5152, Lon: -122.6784},
	}
	seattle := models.Spot{
		ID: primitive.NewObjectID(), Name: "Seattle Cafe", Address: "b",
		Location: models.Location{Lat: 47.6062, Lon: -122.3321},
	}
	spots.spots[portland.ID.Hex()] = portland
	spots.spots[seattle.ID.Hex()] = seattle

	req := httptest.NewRequest(http.MethodGet, "/api/spots?lat=45.52&lon=-122.68&radius_km=10", nil)
	w := httptest.NewRecorder()
	handler.HandleSpots(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result []models.Spot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "Portland Cafe", result[0].Name)
}

func TestSpotsHandler_GetByID(t *testing.T) {
	handler, spots := newTestHandler()

	spot := models.Spot{ID: primitive.NewObjectID(), Name: "Common Grounds", Address: "x"}
	spots.spots[spot.ID.Hex()] = spot

	req := httptest.NewRequest(http.MethodGet, "/api/spots/"+spot.ID.Hex(), nil)
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var found models.Spot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, spot.Name, found.Name)
}

func TestSpotsHandler_GetByID_NotFound(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/spots/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpotsHandler_Update(t *testing.T) {
	handler, spots := newTestHandler()

	spot := models.Spot{ID: primitive.NewObjectID(), Name: "Old Name", Address: "x", WifiRating: 2, NoiseLevel: models.NoiseLoud}
	spots.spots[spot.ID.Hex()] = spot

	updated := spot
	updated.Name = "New Name"
	updated.WifiRating = 5
	body, _ := json.Marshal(updated)

	req := httptest.NewRequest(http.MethodPut, "/api/spots/"+spot.ID.Hex(), bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	stored := spots.spots[spot.ID.Hex()]
	assert.Equal(t, "New Name", stored.Name)
	assert.Equal(t, 5, stored.WifiRating)
	assert.False(t, stored.LastModified.IsZero(), "update should bump last-modified")
}

func TestSpotsHandler_Delete(t *testing.T) {
	handler, spots := newTestHandler()

	spot := models.Spot{ID: primitive.NewObjectID(), Name: "Doomed Cafe", Address: "x"}
	spots.spots[spot.ID.Hex()] = spot

	req := httptest.NewRequest(http.MethodDelete, "/api/spots/"+spot.ID.Hex(), nil)
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, spots.spots)
}

func TestSpotsHandler_Delete_NotFound(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/spots/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	handler.HandleSpotByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
