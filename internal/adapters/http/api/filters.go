// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/sidelinehq/matchday/internal/adapters/repository"
	"github.com/sidelinehq/matchday/internal/domain/model"
	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// FiltersHandler handles filter vocabulary requests.
type FiltersHandler struct {
	deps Dependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps Dependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

type filtersResponse struct {
	Divisions []string     `json:"divisions"`
	Dates     []string     `json:"dates"`
	Teams     []model.Team `json:"teams"`
}

// HandleGetFilters handles GET /api/filters requests. When division
// parameters are present the team list narrows to those divisions; the
// division and date lists always cover the full dataset.
func (h *FiltersHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	vocab, err := h.deps.Vocabulary(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotLoaded) {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", errors.New(notReadyMessage(h.deps)))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	selected := model.NewStringSet(r.URL.Query()["division"]...)
	writeJSON(w, http.StatusOK, filtersResponse{
		Divisions: vocab.Divisions,
		Dates:     vocab.Dates,
		Teams:     schedule.VisibleTeams(vocab, selected),
	})
}
