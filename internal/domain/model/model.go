// Package model contains the domain entities passed between layers.
// JSON tags define the persisted layout; date fields serialize as
// RFC3339 strings and are re-hydrated into time.Time on load.
package model

import (
	"time"

	"partyconnect/internal/domain/geo"
)

// UserRef is a snapshot of a user's public identity embedded into events
// at write time. Later profile edits do not rewrite past events.
type UserRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Requirement describes a needed contribution for an event. A matching
// contribution marks it filled.
type Requirement struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Filled      bool   `json:"filled"`
}

// Contribution records an item or service a user brings to an event.
type Contribution struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar,omitempty"`
	Type          string    `json:"type"`
	Details       string    `json:"details,omitempty"`
	Image         string    `json:"image,omitempty"`
	RequirementID string    `json:"requirementId,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Event is a social event owned by the event store.
type Event struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Location     string           `json:"location"`
	Date         time.Time        `json:"date"`
	Image        string           `json:"image,omitempty"`
	Category     string           `json:"category,omitempty"`
	Coordinates  *geo.Coordinates `json:"coordinates,omitempty"`
	Creator      UserRef          `json:"creator"`
	Contributors []Contribution   `json:"contributors"`
	Requirements []Requirement    `json:"requirements"`
	Participants []string         `json:"participants"`
}

// Clone returns a deep copy so store internals never alias caller data.
func (e Event) Clone() Event {
	out := e
	if e.Coordinates != nil {
		c := *e.Coordinates
		out.Coordinates = &c
	}
	out.Contributors = make([]Contribution, len(e.Contributors))
	for i, c := range e.Contributors {
		out.Contributors[i] = c
		if c.Rating != nil {
			r := *c.Rating
			out.Contributors[i].Rating = &r
		}
	}
	out.Requirements = append([]Requirement(nil), e.Requirements...)
	out.Participants = append([]string(nil), e.Participants...)
	return out
}

// HasParticipant reports whether userID already appears in the
// participant list.
func (e Event) HasParticipant(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Profile is the single locally-controlled user record. Other users
// referenced by events are embedded UserRef snapshots, not profiles.
type Profile struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Avatar          string           `json:"avatar"`
	Email           string           `json:"email,omitempty"`
	Bio             string           `json:"bio"`
	Location        string           `json:"location"`
	Coordinates     *geo.Coordinates `json:"coordinates,omitempty"`
	Preferences     string           `json:"preferences"`
	CreatedEvents   []string         `json:"createdEvents"`
	JoinedEvents    []string         `json:"joinedEvents"`
	SponsoredEvents []string         `json:"sponsoredEvents"`

	// Counters read by the achievement engine.
	PositiveRatings  int `json:"positiveRatings"`
	SuccessfulEvents int `json:"successfulEvents"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	out := p
	if p.Coordinates != nil {
		c := *p.Coordinates
		out.Coordinates = &c
	}
	out.CreatedEvents = append([]string(nil), p.CreatedEvents...)
	out.JoinedEvents = append([]string(nil), p.JoinedEvents...)
	out.SponsoredEvents = append([]string(nil), p.SponsoredEvents...)
	return out
}

// Ref returns the embeddable snapshot of the profile's public identity.
func (p Profile) Ref() UserRef {
	return UserRef{ID: p.ID, Name: p.Name, Avatar: p.Avatar}
}

// ProfilePatch carries optional fields for a shallow profile merge. A nil
// field leaves the current value untouched; a set field fully replaces it
// (coordinates are replaced wholesale, never merged component-wise).
type ProfilePatch struct {
	Name        *string
	Avatar      *string
	Email       *string
	Bio         *string
	Location    *string
	Coordinates *geo.Coordinates
	Preferences *string
}
