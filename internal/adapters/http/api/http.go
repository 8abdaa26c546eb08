// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"partyconnect/internal/domain/achievement"
	"partyconnect/internal/domain/auth"
	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
)

// validate checks request payloads against their struct tags.
var validate = validator.New()

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EventListDependencies
	EventItemDependencies
	NearbyDependencies
	ProfileDependencies
	AchievementDependencies
	AuthDependencies
	GeocodeDependencies
}

// EventListDependencies covers the event collection endpoints.
type EventListDependencies interface {
	Events(ctx context.Context) []model.Event
	EventsByLocation(ctx context.Context, text string) []model.Event
	EventsByCategory(ctx context.Context, category string) []model.Event
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
}

// EventItemDependencies covers single-event reads and actions.
type EventItemDependencies interface {
	Event(ctx context.Context, id string) (model.Event, error)
	Join(ctx context.Context, eventID string) error
	Contribute(ctx context.Context, eventID string, c model.Contribution) (model.Contribution, error)
	RateParticipant(ctx context.Context, eventID, participantID string, rating float64) error
}

// NearbyDependencies covers proximity queries.
type NearbyDependencies interface {
	Nearby(ctx context.Context, maxKm float64) []model.Event
	NearbyFrom(ctx context.Context, origin geo.Coordinates, maxKm float64) []model.Event
}

// ProfileDependencies covers the current-profile endpoints.
type ProfileDependencies interface {
	Profile(ctx context.Context) (model.Profile, error)
	UpdateProfile(ctx context.Context, patch model.ProfilePatch) (model.Profile, error)
	UpdateLocation(ctx context.Context, c geo.Coordinates, name string) (model.Profile, error)
}

// AchievementDependencies covers the badge endpoints.
type AchievementDependencies interface {
	Achievements(ctx context.Context) ([]achievement.Achievement, error)
	AchievementCatalog(ctx context.Context) []achievement.Achievement
}

// AuthDependencies covers the simulated login endpoints.
type AuthDependencies interface {
	LoginWithProvider(ctx context.Context, provider string) (auth.Session, error)
	LoginWithEmail(ctx context.Context, email, password string) (auth.Session, error)
	SignupWithEmail(ctx context.Context, name, email, password string) (auth.Session, error)
}

// GeocodeDependencies covers the mock geocoding endpoints.
type GeocodeDependencies interface {
	SearchLocation(ctx context.Context, query string) (geo.Coordinates, error)
	ReverseGeocode(ctx context.Context, c geo.Coordinates) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	eventsHandler       *EventsHandler
	eventHandler        *EventHandler
	nearbyHandler       *NearbyHandler
	profileHandler      *ProfileHandler
	achievementsHandler *AchievementsHandler
	authHandler         *AuthHandler
	geocodeHandler      *GeocodeHandler
}

// NewServer creates a new API server with all handlers. maxNearbyKm caps
// the nearby radius; defaultNearbyKm applies when the client sends none.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxNearbyKm, defaultNearbyKm float64) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		eventsHandler:       NewEventsHandler(deps),
		eventHandler:        NewEventHandler(deps),
		nearbyHandler:       NewNearbyHandler(deps, maxNearbyKm, defaultNearbyKm),
		profileHandler:      NewProfileHandler(deps),
		achievementsHandler: NewAchievementsHandler(deps),
		authHandler:         NewAuthHandler(deps),
		geocodeHandler:      NewGeocodeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/nearby", MetricsMiddleware(s.nearbyHandler.HandleGetNearby, "nearby"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventHandler.HandleEvent, "event"))
	mux.HandleFunc("/profile", MetricsMiddleware(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/profile/location", MetricsMiddleware(s.profileHandler.HandlePutLocation, "profile_location"))
	mux.HandleFunc("/achievements", MetricsMiddleware(s.achievementsHandler.HandleGetAchievements, "achievements"))
	mux.HandleFunc("/auth/login", MetricsMiddleware(s.authHandler.HandleLogin, "auth_login"))
	mux.HandleFunc("/auth/signup", MetricsMiddleware(s.authHandler.HandleSignup, "auth_signup"))
	mux.HandleFunc("/geocode", MetricsMiddleware(s.geocodeHandler.HandleGeocode, "geocode"))
	mux.HandleFunc("/geocode/reverse", MetricsMiddleware(s.geocodeHandler.HandleReverseGeocode, "geocode_reverse"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
