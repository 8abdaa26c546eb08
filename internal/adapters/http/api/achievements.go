// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// AchievementsHandler handles badge requests.
type AchievementsHandler struct {
	deps AchievementDependencies
}

// NewAchievementsHandler creates a new achievements handler.
func NewAchievementsHandler(deps AchievementDependencies) *AchievementsHandler {
	return &AchievementsHandler{deps: deps}
}

// HandleGetAchievements handles GET /achievements requests. By default
// only earned badges are returned; ?all=true lists the full catalog.
func (h *AchievementsHandler) HandleGetAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if r.URL.Query().Get("all") == "true" {
		writeJSON(w, http.StatusOK, h.deps.AchievementCatalog(r.Context()))
		return
	}
	earned, err := h.deps.Achievements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, earned)
}
