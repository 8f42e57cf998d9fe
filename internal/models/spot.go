package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoiseLevel represents the typical ambient noise at a spot
type NoiseLevel string

const (
	NoiseQuiet    NoiseLevel = "quiet"
	NoiseModerate NoiseLevel = "moderate"
	NoiseLoud     NoiseLevel = "loud"
)

// IsValidNoiseLevel checks if a noise level is valid
func IsValidNoiseLevel(level NoiseLevel) bool {
	switch level {
	case NoiseQuiet, NoiseModerate, NoiseLoud:
		return true
	default:
		return false
	}
}

// Spot represents a user-curated work-friendly location.
type Spot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Address      string             `bson:"address" json:"address"`
	Location     Location           `bson:"location" json:"location"`
	WifiRating   int                `bson:"wifi_rating" json:"wifi_rating"` // 1-5
	NoiseLevel   NoiseLevel         `bson:"noise_level" json:"noise_level"`
	HasOutlets   bool               `bson:"has_outlets" json:"has_outlets"`
	Tips         string             `bson:"tips,omitempty" json:"tips,omitempty"`
	PhotoURL     string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	LastModified time.Time          `bson:"last_modified" json:"last_modified"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

var (
	ErrSpotNameRequired    = errors.New("spot name is required")
	ErrSpotAddressRequired = errors.New("spot address is required")
)

// Validate checks required fields and value ranges on a spot.
func (s *Spot) Validate() error {
	if s.Name == "" {
		return ErrSpotNameRequired
	}
	if s.Address == "" {
		return ErrSpotAddressRequired
	}
	if s.WifiRating < 1 || s.WifiRating > 5 {
		return fmt.Errorf("wifi rating must be between 1 and 5, got %d", s.WifiRating)
	}
	if !IsValidNoiseLevel(s.NoiseLevel) {
		return fmt.Errorf("invalid noise level: %q", s.NoiseLevel)
	}
	return nil
}

// Geocoded reports whether the spot has resolved coordinates.
func (s *Spot) Geocoded() bool {
	return s.Location.Lat != 0 || s.Location.Lon != 0
}
