package repository

import (
	"context"
	"testing"

	"partyconnect/internal/adapters/storage"
	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
)

func strPtr(s string) *string { return &s }

func TestUserStoreDefaultProfile(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(storage.NewMemStore())

	p := s.Profile(ctx)
	if p.ID != "current-user" {
		t.Errorf("default id = %q", p.ID)
	}
	if p.Coordinates == nil || p.Coordinates.Lat != 34.0522 {
		t.Errorf("default coordinates = %v", p.Coordinates)
	}
	if p.CreatedEvents == nil || p.JoinedEvents == nil || p.SponsoredEvents == nil {
		t.Error("event id lists should be initialized empty, not nil")
	}
}

func TestUserStoreUpdateProfileShallowMerge(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(storage.NewMemStore())

	s.UpdateProfile(ctx, model.ProfilePatch{
		Name: strPtr("Jamie"),
		Bio:  strPtr("New bio"),
	})

	p := s.Profile(ctx)
	if p.Name != "Jamie" || p.Bio != "New bio" {
		t.Errorf("patched fields not applied: %+v", p)
	}
	// Unset fields are untouched.
	if p.Location != "Los Angeles, CA" {
		t.Errorf("location clobbered by unrelated patch: %q", p.Location)
	}

	// Coordinates are replaced wholesale.
	s.UpdateProfile(ctx, model.ProfilePatch{Coordinates: &geo.Coordinates{Lat: 1, Lon: 2}})
	p = s.Profile(ctx)
	if p.Coordinates.Lat != 1 || p.Coordinates.Lon != 2 {
		t.Errorf("coordinates not replaced: %v", p.Coordinates)
	}
}

func TestUserStoreListAppendAsymmetry(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(storage.NewMemStore())

	// joinedEvents deduplicates.
	s.AddJoinedEvent(ctx, "evt-1")
	s.AddJoinedEvent(ctx, "evt-1")
	p := s.Profile(ctx)
	if len(p.JoinedEvents) != 1 {
		t.Errorf("joinedEvents = %v, want exactly one evt-1", p.JoinedEvents)
	}

	// createdEvents and sponsoredEvents do not.
	s.AddCreatedEvent(ctx, "evt-1")
	s.AddCreatedEvent(ctx, "evt-1")
	s.AddSponsoredEvent(ctx, "evt-2")
	s.AddSponsoredEvent(ctx, "evt-2")
	p = s.Profile(ctx)
	if len(p.CreatedEvents) != 2 {
		t.Errorf("createdEvents = %v, want two entries", p.CreatedEvents)
	}
	if len(p.SponsoredEvents) != 2 {
		t.Errorf("sponsoredEvents = %v, want two entries", p.SponsoredEvents)
	}
}

func TestUserStoreUpdateLocation(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(storage.NewMemStore())

	s.UpdateLocation(ctx, geo.Coordinates{Lat: 30.2672, Lon: -97.7431}, "Austin, TX")
	p := s.Profile(ctx)
	if p.Location != "Austin, TX" {
		t.Errorf("location = %q", p.Location)
	}
	if p.Coordinates == nil || p.Coordinates.Lat != 30.2672 {
		t.Errorf("coordinates = %v", p.Coordinates)
	}
}

func TestUserStoreSetIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(storage.NewMemStore())

	s.AddJoinedEvent(ctx, "evt-1")
	s.SetIdentity(ctx, "google-user-123", "Alex Johnson", "alex@gmail.com", "/alex.png")

	p := s.Profile(ctx)
	if p.ID != "google-user-123" || p.Name != "Alex Johnson" || p.Email != "alex@gmail.com" {
		t.Errorf("identity not applied: %+v", p)
	}
	// Activity lists survive a login.
	if len(p.JoinedEvents) != 1 {
		t.Errorf("joinedEvents lost on login: %v", p.JoinedEvents)
	}
}

func TestUserStoreCounters(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(storage.NewMemStore())

	s.IncrementPositiveRatings(ctx)
	s.IncrementPositiveRatings(ctx)
	s.IncrementSuccessfulEvents(ctx)

	p := s.Profile(ctx)
	if p.PositiveRatings != 2 || p.SuccessfulEvents != 1 {
		t.Errorf("counters = %d/%d, want 2/1", p.PositiveRatings, p.SuccessfulEvents)
	}
}

func TestUserStorePersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemStore()

	s := NewUserStore(mem)
	s.UpdateProfile(ctx, model.ProfilePatch{Name: strPtr("Jamie")})
	s.AddJoinedEvent(ctx, "evt-1")

	s2 := NewUserStore(mem)
	if err := s2.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := s2.Profile(ctx)
	if p.Name != "Jamie" || len(p.JoinedEvents) != 1 {
		t.Errorf("reloaded profile = %+v", p)
	}
}

func TestUserStoreSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemStore()
	mem.FailSaves = true

	s := NewUserStore(mem)
	s.UpdateProfile(ctx, model.ProfilePatch{Name: strPtr("Jamie")})
	if p := s.Profile(ctx); p.Name != "Jamie" {
		t.Error("in-memory profile should remain authoritative after save failure")
	}
}
