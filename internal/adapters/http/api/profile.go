// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
)

// profilePatchRequest mirrors the JSON shape for PATCH /profile. Absent
// fields leave the stored value untouched.
type profilePatchRequest struct {
	Name        *string          `json:"name"`
	Avatar      *string          `json:"avatar"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Bio         *string          `json:"bio"`
	Location    *string          `json:"location"`
	Coordinates *geo.Coordinates `json:"coordinates"`
	Preferences *string          `json:"preferences"`
}

// locationRequest mirrors the JSON shape for PUT /profile/location.
type locationRequest struct {
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
	Name string  `json:"name"`
}

// ProfileHandler handles current-profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleProfile handles GET /profile and PATCH /profile requests.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := h.deps.Profile(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPatch:
		h.handlePatch(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProfileHandler) handlePatch(w http.ResponseWriter, r *http.Request) {
	var req profilePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Coordinates != nil && !req.Coordinates.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: coordinates out of range", ErrBadRequest))
		return
	}

	p, err := h.deps.UpdateProfile(r.Context(), model.ProfilePatch{
		Name:        req.Name,
		Avatar:      req.Avatar,
		Email:       req.Email,
		Bio:         req.Bio,
		Location:    req.Location,
		Coordinates: req.Coordinates,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandlePutLocation handles PUT /profile/location requests. A missing
// name is resolved through reverse geocoding.
func (h *ProfileHandler) HandlePutLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	p, err := h.deps.UpdateLocation(r.Context(), geo.Coordinates{Lat: req.Lat, Lon: req.Lon}, req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
