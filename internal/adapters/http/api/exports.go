// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sidelinehq/matchday/internal/adapters/repository"
	"github.com/sidelinehq/matchday/internal/domain/model"
)

const icsDefaultDuration = time.Hour

// ExportHandler handles calendar and spreadsheet exports of the filtered
// schedule.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleGetICS handles GET /api/schedule.ics requests. Filters apply the
// same way they do for the schedule view. Games whose date cannot be
// parsed are omitted from the calendar.
func (h *ExportHandler) HandleGetICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	games, err := h.deps.Schedule(r.Context(), parseSelection(r))
	if err != nil {
		h.writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//matchday//schedule//EN\r\n")
	for _, g := range games {
		start, ok := gameStart(g)
		if !ok {
			continue
		}
		end := gameEnd(g, start)
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:game-%d@matchday\r\n", g.ID)
		fmt.Fprintf(&b, "DTSTART:%s\r\n", start.Format("20060102T150405"))
		fmt.Fprintf(&b, "DTEND:%s\r\n", end.Format("20060102T150405"))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscape(g.HomeTeam+" vs "+g.AwayTeam))
		if loc := icsLocation(g); loc != "" {
			fmt.Fprintf(&b, "LOCATION:%s\r\n", icsEscape(loc))
		}
		if g.Division != "" {
			fmt.Fprintf(&b, "CATEGORIES:%s\r\n", icsEscape(g.Division))
		}
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	_, _ = w.Write([]byte(b.String()))
}

// HandleGetCSV handles GET /api/schedule.csv requests.
func (h *ExportHandler) HandleGetCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	games, err := h.deps.Schedule(r.Context(), parseSelection(r))
	if err != nil {
		h.writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"GameID", "Division", "Week", "Date", "StartTime", "EndTime", "HomeTeam", "AwayTeam", "Location", "Field"})
	for _, g := range games {
		_ = cw.Write([]string{
			strconv.Itoa(g.ID),
			g.Division,
			g.Week,
			g.Date,
			g.StartTime,
			g.EndTime,
			g.HomeTeam,
			g.AwayTeam,
			g.Location,
			g.Field,
		})
	}
	cw.Flush()
}

func (h *ExportHandler) writeExportError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotLoaded) {
		writeError(w, http.StatusServiceUnavailable, "not_loaded", errors.New(notReadyMessage(h.deps)))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}

func gameStart(g model.Game) (time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", g.Date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	if t, terr := time.ParseInLocation("15:04", g.StartTime, time.Local); terr == nil {
		return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
	}
	return day, true
}

func gameEnd(g model.Game, start time.Time) time.Time {
	if t, err := time.ParseInLocation("15:04", g.EndTime, time.Local); err == nil {
		end := time.Date(start.Year(), start.Month(), start.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
		if end.After(start) {
			return end
		}
	}
	return start.Add(icsDefaultDuration)
}

func icsLocation(g model.Game) string {
	switch {
	case g.Location != "" && g.Field != "":
		return g.Location + " - " + g.Field
	case g.Location != "":
		return g.Location
	default:
		return g.Field
	}
}

// icsEscape escapes the characters RFC 5545 treats specially in text values.
func icsEscape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
