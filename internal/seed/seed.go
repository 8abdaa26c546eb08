// Package seed ships the sample event catalog used to populate a fresh
// install, plus a small HTTP client for seeding a running instance.
package seed

import (
	"context"
	"time"

	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
	"partyconnect/pkg/logger"
)

// Target is the slice of the service the seeder needs.
type Target interface {
	Events(ctx context.Context) []model.Event
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
}

// Apply loads the catalog into an empty target. A target that already
// holds events is left untouched so reseeding never duplicates data.
func Apply(ctx context.Context, target Target) (int, error) {
	if len(target.Events(ctx)) > 0 {
		return 0, nil
	}

	log := logger.Named("seed")
	n := 0
	for _, ev := range Catalog() {
		if _, err := target.CreateEvent(ctx, ev); err != nil {
			return n, err
		}
		n++
	}
	log.Info(ctx, "sample events loaded", logger.Int("events", n))
	return n, nil
}

// Catalog returns the sample events. Ids are stable so seeded installs
// can be compared, and every description carries the sample tag.
func Catalog() []model.Event {
	return []model.Event{
		{
			ID:          "sample-1",
			Title:       "Summer Beach Party 2025",
			Date:        time.Date(2025, 7, 15, 18, 0, 0, 0, time.UTC),
			Image:       "/images/lets-party.jpg",
			Description: "[SAMPLE EVENT] Join us for the ultimate beach party! Live music, games, and refreshments.",
			Location:    "Malibu Beach, California",
			Coordinates: &geo.Coordinates{Lat: 34.0259, Lon: -118.7798},
			Category:    "party",
			Creator:     model.UserRef{ID: "101", Name: "Alex Johnson", Avatar: "/placeholder.svg?height=40&width=40"},
			Requirements: []model.Requirement{
				{ID: "1", Type: "Food", Description: "Beach snacks and refreshments"},
				{ID: "2", Type: "Music", Description: "Portable speakers"},
			},
		},
		{
			ID:          "sample-2",
			Title:       "Elegant Dance Night",
			Date:        time.Date(2025, 8, 5, 20, 0, 0, 0, time.UTC),
			Image:       "/images/dance-party.jpg",
			Description: "[SAMPLE EVENT] An evening of elegant dancing with professional instructors.",
			Location:    "Grand Ballroom, New York",
			Coordinates: &geo.Coordinates{Lat: 40.7128, Lon: -74.006},
			Category:    "cultural",
			Creator:     model.UserRef{ID: "102", Name: "Emma Dance", Avatar: "/placeholder.svg?height=40&width=40"},
		},
		{
			ID:          "sample-3",
			Title:       "Retro Disco Night",
			Date:        time.Date(2025, 9, 20, 21, 0, 0, 0, time.UTC),
			Image:       "/images/disco-night.jpg",
			Description: "[SAMPLE EVENT] Step back in time with our retro disco night! 70s and 80s hits all night long.",
			Location:    "Studio 54, Chicago",
			Coordinates: &geo.Coordinates{Lat: 41.8781, Lon: -87.6298},
			Category:    "music",
			Creator:     model.UserRef{ID: "103", Name: "Disco Dave", Avatar: "/placeholder.svg?height=40&width=40"},
		},
		{
			ID:          "sample-4",
			Title:       "Purple Party Extravaganza",
			Date:        time.Date(2025, 10, 15, 19, 0, 0, 0, time.UTC),
			Image:       "/images/purple-party.jpg",
			Description: "[SAMPLE EVENT] A colorful celebration with games, prizes, and entertainment!",
			Location:    "Party Palace, San Francisco",
			Coordinates: &geo.Coordinates{Lat: 37.7749, Lon: -122.4194},
			Category:    "party",
			Creator:     model.UserRef{ID: "104", Name: "Party Pro", Avatar: "/placeholder.svg?height=40&width=40"},
		},
		{
			ID:          "sample-5",
			Title:       "Day Party in the Park",
			Date:        time.Date(2025, 7, 25, 12, 0, 0, 0, time.UTC),
			Image:       "/images/day-party.png",
			Description: "[SAMPLE EVENT] Family-friendly day party with balloon artists and face painting!",
			Location:    "Central Park, Austin",
			Coordinates: &geo.Coordinates{Lat: 30.2672, Lon: -97.7431},
			Category:    "family",
			Creator:     model.UserRef{ID: "105", Name: "Family Fun Events", Avatar: "/placeholder.svg?height=40&width=40"},
		},
		{
			ID:          "sample-6",
			Title:       "Neon Party Time",
			Date:        time.Date(2025, 8, 30, 22, 0, 0, 0, time.UTC),
			Image:       "/images/neon-party.jpg",
			Description: "[SAMPLE EVENT] Glow in the dark party with neon decorations and UV paint!",
			Location:    "Neon Club, Miami",
			Coordinates: &geo.Coordinates{Lat: 25.7617, Lon: -80.1918},
			Category:    "party",
			Creator:     model.UserRef{ID: "106", Name: "Neon Nights", Avatar: "/placeholder.svg?height=40&width=40"},
		},
		{
			ID:          "sample-7",
			Title:       "Rainbow Celebration",
			Date:        time.Date(2025, 6, 15, 16, 0, 0, 0, time.UTC),
			Image:       "/images/rainbow-party.jpg",
			Description: "[SAMPLE EVENT] A vibrant celebration of colors, music, and community!",
			Location:    "Rainbow Plaza, Seattle",
			Coordinates: &geo.Coordinates{Lat: 47.6062, Lon: -122.3321},
			Category:    "community",
			Creator:     model.UserRef{ID: "107", Name: "Community Events", Avatar: "/placeholder.svg?height=40&width=40"},
		},
		{
			ID:          "sample-8",
			Title:       "Modern Party Design Workshop",
			Date:        time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC),
			Image:       "/images/party-design.webp",
			Description: "[SAMPLE EVENT] Learn modern party planning and design techniques from experts!",
			Location:    "Design Studio, Los Angeles",
			Coordinates: &geo.Coordinates{Lat: 34.0522, Lon: -118.2437},
			Category:    "education",
			Creator:     model.UserRef{ID: "108", Name: "Design Pro", Avatar: "/placeholder.svg?height=40&width=40"},
		},
	}
}
