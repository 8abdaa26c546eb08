// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"partyconnect/internal/adapters/repository"
	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
)

// createEventRequest mirrors the JSON shape for POST /events.
type createEventRequest struct {
	ID           string              `json:"id"`
	Title        string              `json:"title" validate:"required"`
	Description  string              `json:"description"`
	Location     string              `json:"location" validate:"required"`
	Date         string              `json:"date"`
	Image        string              `json:"image"`
	Category     string              `json:"category"`
	Coordinates  *geo.Coordinates    `json:"coordinates"`
	Requirements []model.Requirement `json:"requirements"`
}

func (r createEventRequest) toEvent() (model.Event, error) {
	ev := model.Event{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		Image:        r.Image,
		Category:     r.Category,
		Coordinates:  r.Coordinates,
		Requirements: r.Requirements,
	}
	if r.Date != "" {
		d, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return model.Event{}, errors.New("invalid date; must be RFC3339")
		}
		ev.Date = d
	}
	return ev, nil
}

// EventsHandler handles event collection requests.
type EventsHandler struct {
	deps EventListDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventListDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleEvents handles GET /events?location=&category= and POST /events.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	location := q.Get("location")
	category := q.Get("category")

	var events []model.Event
	switch {
	case location != "":
		events = h.deps.EventsByLocation(r.Context(), location)
		if category != "" {
			filtered := events[:0]
			for _, ev := range events {
				if strings.EqualFold(ev.Category, category) {
					filtered = append(filtered, ev)
				}
			}
			events = filtered
		}
	case category != "":
		events = h.deps.EventsByCategory(r.Context(), category)
	default:
		events = h.deps.Events(r.Context())
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	ev, err := req.toEvent()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.CreateEvent(r.Context(), ev)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "duplicate_id", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
