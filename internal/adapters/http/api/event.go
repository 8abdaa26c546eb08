// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"partyconnect/internal/adapters/repository"
	"partyconnect/internal/domain/model"
)

// contributeRequest mirrors the JSON shape for POST /events/{id}/contribute.
type contributeRequest struct {
	Type          string `json:"type" validate:"required"`
	Details       string `json:"details"`
	Image         string `json:"image"`
	RequirementID string `json:"requirementId"`
}

// rateRequest mirrors the JSON shape for POST /events/{id}/rate.
type rateRequest struct {
	ParticipantID string  `json:"participantId" validate:"required"`
	Rating        float64 `json:"rating"`
}

// EventHandler handles single-event requests under /events/{id}.
type EventHandler struct {
	deps EventItemDependencies
}

// NewEventHandler creates a new event item handler.
func NewEventHandler(deps EventItemDependencies) *EventHandler {
	return &EventHandler{deps: deps}
}

// HandleEvent routes GET /events/{id} and POST /events/{id}/{action},
// where action is join, contribute or rate.
func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/events/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		h.handleGet(w, r, id)
		return
	}

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	switch parts[1] {
	case "join":
		h.handleJoin(w, r, id)
	case "contribute":
		h.handleContribute(w, r, id)
	case "rate":
		h.handleRate(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	ev, err := h.deps.Event(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *EventHandler) handleJoin(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.deps.Join(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "joined"})
}

func (h *EventHandler) handleContribute(w http.ResponseWriter, r *http.Request, id string) {
	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	c, err := h.deps.Contribute(r.Context(), id, model.Contribution{
		Type:          req.Type,
		Details:       req.Details,
		Image:         req.Image,
		RequirementID: req.RequirementID,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *EventHandler) handleRate(w http.ResponseWriter, r *http.Request, id string) {
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := h.deps.RateParticipant(r.Context(), id, req.ParticipantID, req.Rating); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rated"})
}

// writeStoreError translates store errors into HTTP responses.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
