// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sidelinehq/matchday/internal/domain/model"
	"github.com/sidelinehq/matchday/internal/domain/render"
	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Schedule returns the games visible under the selection.
	Schedule(ctx context.Context, sel model.FilterSelection) ([]model.Game, error)

	// Vocabulary returns the filter options derived from the loaded data.
	Vocabulary(ctx context.Context) (schedule.Vocabulary, error)

	// View returns the grouped display structure for the selection.
	View(ctx context.Context, sel model.FilterSelection) (render.View, error)

	// RenderHTML renders the selection as the site's table fragment.
	RenderHTML(ctx context.Context, sel model.FilterSelection) (string, error)

	// Reload runs one load attempt against the source.
	Reload(ctx context.Context) error

	// LoadError reports the most recent failed load attempt, nil after a
	// success.
	LoadError() error
}

// Server wires HTTP routes for the business API.
type Server struct {
	scheduleHandler *ScheduleHandler
	filtersHandler  *FiltersHandler
	exportHandler   *ExportHandler
	reloadHandler   *ReloadHandler
	statsHandler    *StatsHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, guard *Guard) *Server {
	return &Server{
		scheduleHandler: NewScheduleHandler(deps),
		filtersHandler:  NewFiltersHandler(deps),
		exportHandler:   NewExportHandler(deps),
		reloadHandler:   NewReloadHandler(deps, guard),
		statsHandler:    NewStatsHandler(statsProvider),
		healthHandler:   NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/schedule", MetricsMiddleware(s.scheduleHandler.HandleGetSchedule, "schedule"))
	mux.HandleFunc("/api/schedule/html", MetricsMiddleware(s.scheduleHandler.HandleGetScheduleHTML, "schedule_html"))
	mux.HandleFunc("/api/schedule.ics", MetricsMiddleware(s.exportHandler.HandleGetICS, "schedule_ics"))
	mux.HandleFunc("/api/schedule.csv", MetricsMiddleware(s.exportHandler.HandleGetCSV, "schedule_csv"))
	mux.HandleFunc("/api/filters", MetricsMiddleware(s.filtersHandler.HandleGetFilters, "filters"))
	mux.HandleFunc("/api/reload", MetricsMiddleware(s.reloadHandler.HandlePostReload, "reload"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

// parseSelection reads the repeatable division, team and date query
// parameters into a filter selection. Blank values are dropped.
func parseSelection(r *http.Request) model.FilterSelection {
	q := r.URL.Query()
	return model.FilterSelection{
		Divisions: model.NewStringSet(q["division"]...),
		Teams:     model.NewStringSet(q["team"]...),
		Dates:     model.NewStringSet(q["date"]...),
	}
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
