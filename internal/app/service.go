// Package app provides the core service that implements the dependencies
// required by the HTTP API. It plays the caller role the stores expect:
// cross-store consistency (event collection vs. profile lists) is
// maintained here by invoking both stores' mutators together.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"partyconnect/internal/adapters/repository"
	"partyconnect/internal/adapters/storage"
	"partyconnect/internal/domain/achievement"
	"partyconnect/internal/domain/auth"
	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/geocode"
	"partyconnect/internal/domain/model"
	"partyconnect/pkg/logger"
)

// ErrNotStarted is returned when an operation runs before Start.
var ErrNotStarted = errors.New("service not started")

// contributionTypeSponsor marks contributions that also count as event
// sponsorship for the profile's sponsored list.
const contributionTypeSponsor = "sponsor"

// positiveRatingThreshold is the minimum rating counted as positive for
// the achievement counters.
const positiveRatingThreshold = 4.0

// Session is the result of a successful login.
type Session = auth.Session

// Service implements the API dependencies for the Party Connect system.
type Service struct {
	mu sync.RWMutex

	// Core components
	events   *repository.EventStore
	users    *repository.UserStore
	storage  storage.Store
	auth     *auth.Authenticator
	geocoder geocode.Resolver

	// Configuration
	dataDir string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStorage injects the persistence backend. Defaults to a file store
// under the data directory.
func WithStorage(st storage.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.storage = st
		}
	}
}

// WithDataDir sets the directory for the default file storage.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithAuthenticator injects a configured authenticator.
func WithAuthenticator(a *auth.Authenticator) Option {
	return func(s *Service) {
		if a != nil {
			s.auth = a
		}
	}
}

// WithGeocoder injects a geocoding resolver.
func WithGeocoder(r geocode.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.geocoder = r
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir: "./data",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the stores and loads persisted state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting party connect service...")

	if s.storage == nil {
		fs, err := storage.NewFileStore(s.dataDir)
		if err != nil {
			return fmt.Errorf("init file storage: %w", err)
		}
		s.storage = fs
		s.logger.Info(ctx, "using file storage", logger.String("dir", s.dataDir))
	}
	if s.auth == nil {
		s.auth = auth.New()
	}
	if s.geocoder == nil {
		s.geocoder = geocode.NewTableResolver()
	}

	s.events = repository.NewEventStore(s.storage)
	s.users = repository.NewUserStore(s.storage)

	if err := s.events.Load(ctx); err != nil {
		return fmt.Errorf("load event store: %w", err)
	}
	if err := s.users.Load(ctx); err != nil {
		return fmt.Errorf("load user store: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "party connect service started",
		logger.Int("events", s.events.Count(ctx)),
		logger.String("user", s.users.Profile(ctx).ID),
	)
	return nil
}

// Stop marks the service stopped. Stores persist on every mutation, so
// there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "party connect service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// CreateEvent stores a new event and records it on the creator's
// profile. A missing id is assigned; a missing creator snapshot is
// filled from the current profile.
func (s *Service) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	if err := s.ready(); err != nil {
		return model.Event{}, err
	}

	profile := s.users.Profile(ctx)
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Creator.ID == "" {
		ev.Creator = profile.Ref()
	}
	if ev.Date.IsZero() {
		ev.Date = time.Now()
	}

	if err := s.events.Add(ctx, ev); err != nil {
		return model.Event{}, err
	}
	if ev.Creator.ID == profile.ID {
		s.users.AddCreatedEvent(ctx, ev.ID)
	}

	return s.events.Get(ctx, ev.ID)
}

// Event returns a single event by id.
func (s *Service) Event(ctx context.Context, id string) (model.Event, error) {
	if err := s.ready(); err != nil {
		return model.Event{}, err
	}
	return s.events.Get(ctx, id)
}

// Events returns all events in insertion order.
func (s *Service) Events(ctx context.Context) []model.Event {
	if err := s.ready(); err != nil {
		return nil
	}
	return s.events.List(ctx)
}

// Join adds the current user to the event and records the join on the
// profile. The profile-side list dedupes; the event side does too.
func (s *Service) Join(ctx context.Context, eventID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	profile := s.users.Profile(ctx)
	if err := s.events.Join(ctx, eventID, profile.ID); err != nil {
		return err
	}
	s.users.AddJoinedEvent(ctx, eventID)
	return nil
}

// Contribute records a contribution by the current user. Sponsor-typed
// contributions also land on the profile's sponsored list.
func (s *Service) Contribute(ctx context.Context, eventID string, c model.Contribution) (model.Contribution, error) {
	if err := s.ready(); err != nil {
		return model.Contribution{}, err
	}

	profile := s.users.Profile(ctx)
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.UserID == "" {
		c.UserID = profile.ID
		c.Name = profile.Name
		c.Avatar = profile.Avatar
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	if err := s.events.Contribute(ctx, eventID, c); err != nil {
		return model.Contribution{}, err
	}

	if c.UserID == profile.ID {
		s.users.AddJoinedEvent(ctx, eventID)
		if c.Type == contributionTypeSponsor {
			s.users.AddSponsoredEvent(ctx, eventID)
		}
	}
	return c, nil
}

// RateParticipant writes a rating onto a contributor. When the current
// user receives a positive rating, the profile counter the achievement
// engine reads is bumped.
func (s *Service) RateParticipant(ctx context.Context, eventID, participantID string, rating float64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.events.RateParticipant(ctx, eventID, participantID, rating); err != nil {
		return err
	}
	profile := s.users.Profile(ctx)
	if participantID == profile.ID && rating >= positiveRatingThreshold {
		s.users.IncrementPositiveRatings(ctx)
	}
	return nil
}

// Nearby returns events within maxKm of the current profile's location.
// A profile without coordinates sees no nearby events.
func (s *Service) Nearby(ctx context.Context, maxKm float64) []model.Event {
	if err := s.ready(); err != nil {
		return nil
	}
	profile := s.users.Profile(ctx)
	if profile.Coordinates == nil || !profile.Coordinates.Valid() {
		return []model.Event{}
	}
	return s.events.ByDistance(ctx, *profile.Coordinates, maxKm)
}

// NearbyFrom returns events within maxKm of an explicit origin.
func (s *Service) NearbyFrom(ctx context.Context, origin geo.Coordinates, maxKm float64) []model.Event {
	if err := s.ready(); err != nil {
		return nil
	}
	return s.events.ByDistance(ctx, origin, maxKm)
}

// EventsByLocation returns events whose location matches text.
func (s *Service) EventsByLocation(ctx context.Context, text string) []model.Event {
	if err := s.ready(); err != nil {
		return nil
	}
	return s.events.ByLocation(ctx, text)
}

// EventsByCategory returns events in the given category.
func (s *Service) EventsByCategory(ctx context.Context, category string) []model.Event {
	if err := s.ready(); err != nil {
		return nil
	}
	return s.events.ByCategory(ctx, category)
}

// Profile returns the current profile.
func (s *Service) Profile(ctx context.Context) (model.Profile, error) {
	if err := s.ready(); err != nil {
		return model.Profile{}, err
	}
	return s.users.Profile(ctx), nil
}

// UpdateProfile applies a shallow patch and returns the updated profile.
func (s *Service) UpdateProfile(ctx context.Context, patch model.ProfilePatch) (model.Profile, error) {
	if err := s.ready(); err != nil {
		return model.Profile{}, err
	}
	s.users.UpdateProfile(ctx, patch)
	return s.users.Profile(ctx), nil
}

// UpdateLocation sets the profile's coordinates and location name. An
// empty name is resolved through the mock reverse geocoder.
func (s *Service) UpdateLocation(ctx context.Context, c geo.Coordinates, name string) (model.Profile, error) {
	if err := s.ready(); err != nil {
		return model.Profile{}, err
	}
	if name == "" {
		name = s.geocoder.ReverseGeocode(ctx, c)
	}
	s.users.UpdateLocation(ctx, c, name)
	return s.users.Profile(ctx), nil
}

// SearchLocation resolves a free-text place name to coordinates.
func (s *Service) SearchLocation(ctx context.Context, query string) (geo.Coordinates, error) {
	if err := s.ready(); err != nil {
		return geo.Coordinates{}, err
	}
	return s.geocoder.Geocode(ctx, query)
}

// ReverseGeocode resolves coordinates to a display name.
func (s *Service) ReverseGeocode(ctx context.Context, c geo.Coordinates) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.geocoder.ReverseGeocode(ctx, c), nil
}

// Achievements returns the badges the current profile has earned.
func (s *Service) Achievements(ctx context.Context) ([]achievement.Achievement, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return achievement.For(s.users.Profile(ctx)), nil
}

// AchievementCatalog returns the full badge catalog.
func (s *Service) AchievementCatalog(ctx context.Context) []achievement.Achievement {
	return achievement.All()
}

// LoginWithProvider runs a simulated social login and adopts the
// returned identity as the current profile.
func (s *Service) LoginWithProvider(ctx context.Context, provider string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	id, err := s.auth.LoginWithProvider(ctx, provider)
	if err != nil {
		return Session{}, err
	}
	return s.openSession(ctx, id)
}

// LoginWithEmail verifies email credentials and adopts the identity.
func (s *Service) LoginWithEmail(ctx context.Context, email, password string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	id, err := s.auth.LoginWithEmail(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.openSession(ctx, id)
}

// SignupWithEmail registers an email account and adopts the identity.
func (s *Service) SignupWithEmail(ctx context.Context, name, email, password string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	id, err := s.auth.SignupWithEmail(ctx, name, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.openSession(ctx, id)
}

func (s *Service) openSession(ctx context.Context, id auth.Identity) (Session, error) {
	token, err := s.auth.IssueToken(id)
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}
	s.users.SetIdentity(ctx, id.ID, id.Name, id.Email, id.Avatar)
	s.logger.Info(ctx, "user logged in",
		logger.String("user", id.ID),
		logger.String("provider", id.Provider),
	)
	return Session{Identity: id, Token: token}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": started,
	}
	if !started {
		return stats
	}

	ctx := context.Background()
	profile := s.users.Profile(ctx)
	stats["events"] = s.events.Count(ctx)
	stats["currentUser"] = profile.ID
	stats["createdEvents"] = len(profile.CreatedEvents)
	stats["joinedEvents"] = len(profile.JoinedEvents)
	stats["sponsoredEvents"] = len(profile.SponsoredEvents)
	stats["achievements"] = len(achievement.For(profile))
	return stats
}
