package importer

import "github.com/gmiller1004/workhaven-server/internal/models"

// seedSpots is the starter data set inserted into an empty database. The
// addresses are geocoded at import time.
var seedSpots = []models.Spot{
	{
		Name:       "Ground Control Coffee",
		Address:    "123 SE Main St, Portland, OR",
		WifiRating: 4,
		NoiseLevel: models.NoiseModerate,
		HasOutlets: true,
		Tips:       "Back room has the most outlets",
	},
	{
		Name:       "Common Grounds",
		Address:    "456 Pine St, Seattle, WA",
		WifiRating: 5,
		NoiseLevel: models.NoiseQuiet,
		HasOutlets: true,
		Tips:       "Upstairs is a dedicated laptop area",
	},
	{
		Name:       "The Daily Grind",
		Address:    "789 Market St, San Francisco, CA",
		WifiRating: 3,
		NoiseLevel: models.NoiseLoud,
		HasOutlets: false,
		Tips:       "Gets busy after 11am, come early",
	},
	{
		Name:       "Steam Coffee Roasters",
		Address:    "321 W Burnside St, Portland, OR",
		WifiRating: 4,
		NoiseLevel: models.NoiseQuiet,
		HasOutlets: true,
	},
	{
		Name:       "Harbor Perk",
		Address:    "654 Alaskan Way, Seattle, WA",
		WifiRating: 2,
		NoiseLevel: models.NoiseModerate,
		HasOutlets: false,
		Tips:       "Great view, weak wifi - bring a hotspot",
	},
	{
		Name:       "The Study Hall",
		Address:    "987 University Ave, Berkeley, CA",
		WifiRating: 5,
		NoiseLevel: models.NoiseQuiet,
		HasOutlets: true,
		Tips:       "Library rules: calls outside only",
	},
	{
		Name:       "Roast & Post",
		Address:    "147 NW 23rd Ave, Portland, OR",
		WifiRating: 3,
		NoiseLevel: models.NoiseModerate,
		HasOutlets: true,
	},
	{
		Name:       "Beanery on Fifth",
		Address:    "258 5th Ave, San Diego, CA",
		WifiRating: 4,
		NoiseLevel: models.NoiseLoud,
		HasOutlets: true,
		Tips:       "Patio seating has two outdoor outlets",
	},
}
