// Package discovery wraps the third-party place search API used to suggest
// candidate work spots near a location. The API is key-based; the key is
// loaded from the environment (PLACES_API_KEY, via the .env file).
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gmiller1004/workhaven-server/internal/models"
)

var ErrMissingAPIKey = errors.New("places API key not configured")

const defaultBaseURL = "https://api.foursquare.com/v3/places/search"

// Place is a candidate location returned by the discovery API.
type Place struct {
	FsqID    string `json:"fsq_id"`
	Name     string `json:"name"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Categories []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
}

type searchResponse struct {
	Results []Place `json:"results"`
}

// Client is a place discovery API client.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a discovery client with the key from the environment.
// The returned client is usable even without a key; Search reports
// ErrMissingAPIKey in that case so handlers can surface a status message.
func NewClient() *Client {
	base := os.Getenv("PLACES_API_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		BaseURL:    base,
		APIKey:     os.Getenv("PLACES_API_KEY"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns candidate places near the given coordinates. Results are
// limited to cafe-like categories the API exposes.
func (c *Client) Search(ctx context.Context, lat, lon float64, radiusMeters int) ([]Place, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("categories", "13032,13035") // cafes, coffee shops
	params.Set("limit", "25")

	u := fmt.Sprintf("%s?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// ToSpotDraft maps a discovered place onto an unsaved spot with neutral
// amenity values for the user to refine.
func (p Place) ToSpotDraft() models.Spot {
	return models.Spot{
		Name:    p.Name,
		Address: p.Location.FormattedAddress,
		Location: models.Location{
			Lat: p.Geocodes.Main.Latitude,
			Lon: p.Geocodes.Main.Longitude,
		},
		WifiRating: 3,
		NoiseLevel: models.NoiseModerate,
	}
}
