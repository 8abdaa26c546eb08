// Package achievement evaluates badge criteria against profile counters.
package achievement

import "partyconnect/internal/domain/model"

// Achievement is a badge definition with its earning criteria.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	criteria func(model.Profile) bool
}

// The badge catalog. Order here is the order badges are reported in.
var catalog = []Achievement{
	{
		ID:          "first-time-sponsor",
		Name:        "First Time Sponsor",
		Description: "Sponsored your first event",
		Icon:        "🎉",
		criteria:    func(p model.Profile) bool { return len(p.SponsoredEvents) >= 1 },
	},
	{
		ID:          "community-leader",
		Name:        "Community Leader",
		Description: "Created 3 or more events",
		Icon:        "👑",
		criteria:    func(p model.Profile) bool { return len(p.CreatedEvents) >= 3 },
	},
	{
		ID:          "social-butterfly",
		Name:        "Social Butterfly",
		Description: "Joined 5 or more events",
		Icon:        "🦋",
		criteria:    func(p model.Profile) bool { return len(p.JoinedEvents) >= 5 },
	},
	{
		ID:          "top-contributor",
		Name:        "Top Contributor",
		Description: "Received 10 or more positive ratings",
		Icon:        "⭐",
		criteria:    func(p model.Profile) bool { return p.PositiveRatings >= 10 },
	},
	{
		ID:          "event-master",
		Name:        "Event Master",
		Description: "Successfully organized 10 events",
		Icon:        "🏆",
		criteria:    func(p model.Profile) bool { return p.SuccessfulEvents >= 10 },
	},
}

// For returns the badges the profile has earned, in catalog order.
// Missing or zero counters simply fail their predicates; they are never
// an error.
func For(p model.Profile) []Achievement {
	earned := make([]Achievement, 0, len(catalog))
	for _, a := range catalog {
		if a.criteria(p) {
			earned = append(earned, a)
		}
	}
	return earned
}

// Earned reports whether the profile has earned the badge with the given
// id. Unknown ids report false.
func Earned(p model.Profile, id string) bool {
	for _, a := range catalog {
		if a.ID == id {
			return a.criteria(p)
		}
	}
	return false
}

// All returns the full badge catalog.
func All() []Achievement {
	return append([]Achievement(nil), catalog...)
}
