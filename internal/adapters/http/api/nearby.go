// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
)

// NearbyHandler handles proximity queries.
type NearbyHandler struct {
	deps      NearbyDependencies
	maxKm     float64
	defaultKm float64
}

// NewNearbyHandler creates a new nearby handler.
func NewNearbyHandler(deps NearbyDependencies, maxKm, defaultKm float64) *NearbyHandler {
	return &NearbyHandler{deps: deps, maxKm: maxKm, defaultKm: defaultKm}
}

// HandleGetNearby handles GET /events/nearby?lat=&lon=&max_km= requests.
// Without lat/lon the current profile's coordinates are the origin.
func (h *NearbyHandler) HandleGetNearby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	radius := h.defaultKm
	if s := q.Get("max_km"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid max_km", ErrBadRequest))
			return
		}
		radius = v
	}
	if radius > h.maxKm {
		writeError(w, http.StatusBadRequest, "radius_exceeded",
			fmt.Errorf("%w: max_km above %g", ErrBadRequest, h.maxKm))
		return
	}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	var events []model.Event
	if latStr != "" || lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid lat/lon", ErrBadRequest))
			return
		}
		origin := geo.Coordinates{Lat: lat, Lon: lon}
		if !origin.Valid() {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: lat/lon out of range", ErrBadRequest))
			return
		}
		events = h.deps.NearbyFrom(r.Context(), origin, radius)
	} else {
		events = h.deps.Nearby(r.Context(), radius)
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
