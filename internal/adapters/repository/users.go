package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"partyconnect/internal/adapters/storage"
	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
	"partyconnect/pkg/logger"
	"partyconnect/pkg/metrics"
)

// userStorageKey is the persisted document key for the current profile.
const userStorageKey = "user-storage"

// userDocument is the persisted layout for the profile store.
type userDocument struct {
	CurrentUser model.Profile `json:"currentUser"`
}

// UserStore owns the single locally-controlled profile.
type UserStore struct {
	mu      sync.RWMutex
	current model.Profile
	storage storage.Store
	log     logger.Logger
}

// NewUserStore creates a store initialized with the default guest
// profile, persisting through st.
func NewUserStore(st storage.Store, opts ...UserOption) *UserStore {
	s := &UserStore{
		current: defaultProfile(),
		storage: st,
		log:     logger.Named("userstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultProfile is the guest identity used before any login.
func defaultProfile() model.Profile {
	return model.Profile{
		ID:              "current-user",
		Name:            "You (Current User)",
		Avatar:          "/placeholder.svg?height=100&width=100",
		Bio:             "Event enthusiast and community organizer. Love bringing people together!",
		Location:        "Los Angeles, CA",
		Coordinates:     &geo.Coordinates{Lat: 34.0522, Lon: -118.2437},
		Preferences:     "Pop, Rock, Electronic",
		CreatedEvents:   []string{},
		JoinedEvents:    []string{},
		SponsoredEvents: []string{},
	}
}

// Load replaces the in-memory profile with the persisted document. A
// missing key keeps the default profile.
func (s *UserStore) Load(ctx context.Context) error {
	data, err := s.storage.Load(ctx, userStorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("load profile: %w", err)
	}

	var doc userDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}

	s.mu.Lock()
	s.current = doc.CurrentUser.Clone()
	s.mu.Unlock()

	s.log.Info(ctx, "user store loaded", logger.String("user", doc.CurrentUser.ID))
	return nil
}

// persist writes the profile to storage. Must be called with the write
// lock held. Failures are logged and counted, never returned.
func (s *UserStore) persist(ctx context.Context) {
	data, err := json.Marshal(userDocument{CurrentUser: s.current})
	if err != nil {
		s.log.Error(ctx, "encode profile for persistence", logger.Error(err))
		metrics.RecordStoreSaveFailure("users")
		return
	}

	start := time.Now()
	if err := s.storage.Save(ctx, userStorageKey, data); err != nil {
		s.log.Error(ctx, "persist profile; in-memory state stays authoritative", logger.Error(err))
		metrics.RecordStoreSaveFailure("users")
		return
	}
	metrics.RecordStoreSaveLatency(float64(time.Since(start).Milliseconds()))
}

// Profile returns a copy of the current profile.
func (s *UserStore) Profile(_ context.Context) model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// UpdateProfile applies a shallow merge: each set patch field fully
// replaces the current value, nil fields are untouched. Coordinates are
// replaced wholesale, never merged component-wise.
func (s *UserStore) UpdateProfile(ctx context.Context, patch model.ProfilePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Name != nil {
		s.current.Name = *patch.Name
	}
	if patch.Avatar != nil {
		s.current.Avatar = *patch.Avatar
	}
	if patch.Email != nil {
		s.current.Email = *patch.Email
	}
	if patch.Bio != nil {
		s.current.Bio = *patch.Bio
	}
	if patch.Location != nil {
		s.current.Location = *patch.Location
	}
	if patch.Coordinates != nil {
		c := *patch.Coordinates
		s.current.Coordinates = &c
	}
	if patch.Preferences != nil {
		s.current.Preferences = *patch.Preferences
	}
	s.persist(ctx)
}

// SetIdentity replaces the profile's identity fields after a login.
func (s *UserStore) SetIdentity(ctx context.Context, id, name, email, avatar string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ID = id
	s.current.Name = name
	s.current.Email = email
	s.current.Avatar = avatar
	s.persist(ctx)
}

// AddCreatedEvent appends eventID to the created list. Appends are
// unconditional: repeated calls record repeated entries.
func (s *UserStore) AddCreatedEvent(ctx context.Context, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.CreatedEvents = append(s.current.CreatedEvents, eventID)
	s.persist(ctx)
}

// AddJoinedEvent appends eventID to the joined list unless it is already
// present. This is the only deduplicated list; the asymmetry with the
// created and sponsored lists preserves the source behavior.
func (s *UserStore) AddJoinedEvent(ctx context.Context, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.current.JoinedEvents {
		if id == eventID {
			return
		}
	}
	s.current.JoinedEvents = append(s.current.JoinedEvents, eventID)
	s.persist(ctx)
}

// AddSponsoredEvent appends eventID to the sponsored list. Appends are
// unconditional, like AddCreatedEvent.
func (s *UserStore) AddSponsoredEvent(ctx context.Context, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.SponsoredEvents = append(s.current.SponsoredEvents, eventID)
	s.persist(ctx)
}

// UpdateLocation sets coordinates and the location name in one merge.
func (s *UserStore) UpdateLocation(ctx context.Context, c geo.Coordinates, locationName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Coordinates = &c
	s.current.Location = locationName
	s.persist(ctx)
}

// IncrementPositiveRatings bumps the positive-rating counter read by the
// achievement engine.
func (s *UserStore) IncrementPositiveRatings(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.PositiveRatings++
	s.persist(ctx)
}

// IncrementSuccessfulEvents bumps the successful-event counter read by
// the achievement engine.
func (s *UserStore) IncrementSuccessfulEvents(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.SuccessfulEvents++
	s.persist(ctx)
}
