// Package repository implements the event and profile stores on top of
// the storage port. Stores are in-memory and authoritative; every
// mutation re-serializes the owning collection to storage, and a failed
// write is logged rather than surfaced, so the session keeps working on
// the in-memory state.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"partyconnect/internal/adapters/storage"
	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
	"partyconnect/pkg/logger"
	"partyconnect/pkg/metrics"
)

// eventStorageKey is the persisted document key for the event collection.
const eventStorageKey = "event-storage"

// eventsDocument is the persisted layout: only the events collection is
// written; derived state never is.
type eventsDocument struct {
	Events []model.Event `json:"events"`
}

// EventStore owns the event collection. Listing order is insertion order.
type EventStore struct {
	mu      sync.RWMutex
	order   []string
	events  map[string]*model.Event
	storage storage.Store
	log     logger.Logger
}

// NewEventStore creates an empty store persisting through st.
func NewEventStore(st storage.Store, opts ...EventOption) *EventStore {
	s := &EventStore{
		events:  make(map[string]*model.Event),
		storage: st,
		log:     logger.Named("eventstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted document.
// A missing key means a fresh install and leaves the store empty.
func (s *EventStore) Load(ctx context.Context) error {
	data, err := s.storage.Load(ctx, eventStorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("load events: %w", err)
	}

	var doc eventsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode events: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.events = make(map[string]*model.Event, len(doc.Events))
	for i := range doc.Events {
		ev := doc.Events[i].Clone()
		if _, dup := s.events[ev.ID]; dup {
			s.log.Warn(ctx, "duplicate event id in persisted document; keeping first",
				logger.String("id", ev.ID))
			continue
		}
		s.order = append(s.order, ev.ID)
		s.events[ev.ID] = &ev
	}

	s.log.Info(ctx, "event store loaded", logger.Int("events", len(s.order)))
	metrics.UpdateEventCount(len(s.order))
	return nil
}

// persist writes the full collection to storage. Must be called with the
// write lock held. Failures are logged and counted, never returned.
func (s *EventStore) persist(ctx context.Context) {
	doc := eventsDocument{Events: make([]model.Event, 0, len(s.order))}
	for _, id := range s.order {
		doc.Events = append(doc.Events, *s.events[id])
	}
	data, err := json.Marshal(doc)
	if err != nil {
		s.log.Error(ctx, "encode events for persistence", logger.Error(err))
		metrics.RecordStoreSaveFailure("events")
		return
	}

	start := time.Now()
	if err := s.storage.Save(ctx, eventStorageKey, data); err != nil {
		s.log.Error(ctx, "persist events; in-memory state stays authoritative", logger.Error(err))
		metrics.RecordStoreSaveFailure("events")
		return
	}
	metrics.RecordStoreSaveLatency(float64(time.Since(start).Milliseconds()))
}

// Add inserts a new event. Invalid coordinates are logged and dropped
// rather than failing the write; a missing participant list initializes
// to the creator.
func (s *EventStore) Add(ctx context.Context, event model.Event) error {
	if event.ID == "" {
		return ErrMissingID
	}

	ev := event.Clone()
	if ev.Coordinates != nil && !ev.Coordinates.Valid() {
		s.log.Warn(ctx, "invalid coordinates on event; storing without them",
			logger.String("id", ev.ID),
			logger.Float64("lat", ev.Coordinates.Lat),
			logger.Float64("lon", ev.Coordinates.Lon))
		ev.Coordinates = nil
	}
	if len(ev.Participants) == 0 {
		ev.Participants = []string{ev.Creator.ID}
	}
	if ev.Contributors == nil {
		ev.Contributors = []model.Contribution{}
	}
	if ev.Requirements == nil {
		ev.Requirements = []model.Requirement{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[ev.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, ev.ID)
	}
	s.order = append(s.order, ev.ID)
	s.events[ev.ID] = &ev
	s.persist(ctx)

	metrics.RecordEventCreated()
	metrics.UpdateEventCount(len(s.order))
	return nil
}

// Get returns the event with the given id.
func (s *EventStore) Get(_ context.Context, id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ev.Clone(), nil
}

// List returns all events in insertion order.
func (s *EventStore) List(_ context.Context) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.events[id].Clone())
	}
	return out
}

// Count returns the number of events in the store.
func (s *EventStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Join adds userID to the event's participants. Joining twice is a
// no-op: the participant list is kept duplicate-free.
func (s *EventStore) Join(ctx context.Context, eventID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventID)
	}
	if ev.HasParticipant(userID) {
		return nil
	}
	ev.Participants = append(ev.Participants, userID)
	s.persist(ctx)

	metrics.RecordEventJoin()
	return nil
}

// Contribute appends the contribution, marks a matching requirement
// filled, and adds the contributor to the participants when absent.
func (s *EventStore) Contribute(ctx context.Context, eventID string, c model.Contribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventID)
	}

	ev.Contributors = append(ev.Contributors, c)
	if c.RequirementID != "" {
		for i := range ev.Requirements {
			if ev.Requirements[i].ID == c.RequirementID {
				ev.Requirements[i].Filled = true
			}
		}
	}
	if c.UserID != "" && !ev.HasParticipant(c.UserID) {
		ev.Participants = append(ev.Participants, c.UserID)
	}
	s.persist(ctx)

	metrics.RecordContribution()
	return nil
}

// RateParticipant overwrites the rating of the contributor whose id or
// userId matches participantID. Ratings are clamped to [0, 5]. No match
// is a silent no-op, matching the lenient source behavior.
func (s *EventStore) RateParticipant(ctx context.Context, eventID, participantID string, rating float64) error {
	rating = clampRating(rating)

	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, eventID)
	}

	changed := false
	for i := range ev.Contributors {
		c := &ev.Contributors[i]
		if c.ID == participantID || c.UserID == participantID {
			r := rating
			c.Rating = &r
			changed = true
		}
	}
	if !changed {
		return nil
	}
	s.persist(ctx)

	metrics.RecordRating()
	return nil
}

// ByDistance returns events whose coordinates lie within maxKm of
// origin. Events without valid coordinates are excluded.
func (s *EventStore) ByDistance(_ context.Context, origin geo.Coordinates, maxKm float64) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, id := range s.order {
		ev := s.events[id]
		if ev.Coordinates == nil || !ev.Coordinates.Valid() {
			continue
		}
		if ev.Coordinates.DistanceTo(origin) <= maxKm {
			out = append(out, ev.Clone())
		}
	}
	return out
}

// ByLocation returns events whose location contains text,
// case-insensitively.
func (s *EventStore) ByLocation(_ context.Context, text string) []model.Event {
	q := strings.ToLower(text)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, id := range s.order {
		ev := s.events[id]
		if strings.Contains(strings.ToLower(ev.Location), q) {
			out = append(out, ev.Clone())
		}
	}
	return out
}

// ByCategory returns events in the given category. Matching is
// case-insensitive, applied uniformly.
func (s *EventStore) ByCategory(_ context.Context, category string) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, id := range s.order {
		ev := s.events[id]
		if strings.EqualFold(ev.Category, category) {
			out = append(out, ev.Clone())
		}
	}
	return out
}

// clampRating bounds a rating to the [0, 5] scale.
func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
