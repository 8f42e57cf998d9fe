package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRating represents a single user's rating of a spot.
type UserRating struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SpotID     string             `json:"spot_id" bson:"spot_id"`
	UserID     string             `json:"user_id" bson:"user_id"`
	WifiRating int                `json:"wifi_rating" bson:"wifi_rating"` // 1-5
	NoiseLevel NoiseLevel         `json:"noise_level" bson:"noise_level"`
	Comment    string             `json:"comment" bson:"comment"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// Validate checks value ranges on a rating.
func (r *UserRating) Validate() error {
	if r.WifiRating < 1 || r.WifiRating > 5 {
		return fmt.Errorf("wifi rating must be between 1 and 5, got %d", r.WifiRating)
	}
	if r.NoiseLevel != "" && !IsValidNoiseLevel(r.NoiseLevel) {
		return fmt.Errorf("invalid noise level: %q", r.NoiseLevel)
	}
	return nil
}

// RatingSummary aggregates the ratings submitted for a spot.
type RatingSummary struct {
	SpotID       string     `json:"spot_id"`
	Count        int        `json:"count"`
	AverageWifi  float64    `json:"average_wifi"`
	TypicalNoise NoiseLevel `json:"typical_noise,omitempty"`
}

// SummarizeRatings computes the average wifi rating and the most frequently
// reported noise level across a set of ratings.
func SummarizeRatings(spotID string, ratings []UserRating) RatingSummary {
	summary := RatingSummary{SpotID: spotID, Count: len(ratings)}
	if len(ratings) == 0 {
		return summary
	}

	wifiTotal := 0
	noiseCounts := make(map[NoiseLevel]int)
	for _, r := range ratings {
		wifiTotal += r.WifiRating
		if r.NoiseLevel != "" {
			noiseCounts[r.NoiseLevel]++
		}
	}
	summary.AverageWifi = float64(wifiTotal) / float64(len(ratings))

	best := 0
	for _, level := range []NoiseLevel{NoiseQuiet, NoiseModerate, NoiseLoud} {
		if noiseCounts[level] > best {
			best = noiseCounts[level]
			summary.TypicalNoise = level
		}
	}
	return summary
}
