// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/sidelinehq/matchday/internal/adapters/repository"
	"github.com/sidelinehq/matchday/internal/adapters/source"
)

// ScheduleHandler handles schedule view requests.
type ScheduleHandler struct {
	deps Dependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps Dependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

// HandleGetSchedule handles GET /api/schedule requests. The response is the
// grouped week/date view for the requested filters.
func (h *ScheduleHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.View(r.Context(), parseSelection(r))
	if err != nil {
		if errors.Is(err, repository.ErrNotLoaded) {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", errors.New(notReadyMessage(h.deps)))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleGetScheduleHTML handles GET /api/schedule/html requests, returning
// the rendered table fragment the site injects directly.
func (h *ScheduleHandler) HandleGetScheduleHTML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	fragment, err := h.deps.RenderHTML(r.Context(), parseSelection(r))
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if errors.Is(err, repository.ErrNotLoaded) {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `<div class="error-message">%s</div>`, html.EscapeString(notReadyMessage(h.deps)))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `<div class="error-message">Something went wrong rendering the schedule.</div>`)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(fragment))
}

// notReadyMessage picks the user-facing string for the unavailable state:
// the message for the last failed load, or a generic one while the first
// attempt is still in flight.
func notReadyMessage(deps Dependencies) string {
	if msg := source.UserMessage(deps.LoadError()); msg != "" {
		return msg
	}
	return "Schedule data is not loaded yet. Please try again shortly."
}
