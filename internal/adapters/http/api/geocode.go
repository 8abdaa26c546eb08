// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/geocode"
)

// geocodeResponse pairs resolved coordinates with their query.
type geocodeResponse struct {
	Query       string          `json:"query"`
	Coordinates geo.Coordinates `json:"coordinates"`
}

// reverseGeocodeResponse names a pair of coordinates.
type reverseGeocodeResponse struct {
	Coordinates geo.Coordinates `json:"coordinates"`
	Name        string          `json:"name"`
}

// GeocodeHandler handles the mock geocoding endpoints.
type GeocodeHandler struct {
	deps GeocodeDependencies
}

// NewGeocodeHandler creates a new geocode handler.
func NewGeocodeHandler(deps GeocodeDependencies) *GeocodeHandler {
	return &GeocodeHandler{deps: deps}
}

// HandleGeocode handles GET /geocode?q= requests.
func (h *GeocodeHandler) HandleGeocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing q", ErrBadRequest))
		return
	}

	c, err := h.deps.SearchLocation(r.Context(), query)
	if err != nil {
		if errors.Is(err, geocode.ErrUnknownLocation) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, geocodeResponse{Query: query, Coordinates: c})
}

// HandleReverseGeocode handles GET /geocode/reverse?lat=&lon= requests.
func (h *GeocodeHandler) HandleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid lat/lon", ErrBadRequest))
		return
	}
	c := geo.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: lat/lon out of range", ErrBadRequest))
		return
	}

	name, err := h.deps.ReverseGeocode(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, reverseGeocodeResponse{Coordinates: c, Name: name})
}
