package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/sidelinehq/matchday/internal/adapters/http/api"
	"github.com/sidelinehq/matchday/internal/adapters/repository"
	"github.com/sidelinehq/matchday/internal/adapters/source"
	"github.com/sidelinehq/matchday/internal/domain/model"
	"github.com/sidelinehq/matchday/internal/domain/render"
	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

type stubDeps struct {
	games     []model.Game
	vocab     schedule.Vocabulary
	view      render.View
	html      string
	notLoaded bool
	loadErr   error
	reloadErr error
	reloads   int

	lastSelection model.FilterSelection
}

func (s *stubDeps) Schedule(_ context.Context, sel model.FilterSelection) ([]model.Game, error) {
	if s.notLoaded {
		return nil, repository.ErrNotLoaded
	}
	s.lastSelection = sel
	return s.games, nil
}

func (s *stubDeps) Vocabulary(_ context.Context) (schedule.Vocabulary, error) {
	if s.notLoaded {
		return schedule.Vocabulary{}, repository.ErrNotLoaded
	}
	return s.vocab, nil
}

func (s *stubDeps) View(_ context.Context, sel model.FilterSelection) (render.View, error) {
	if s.notLoaded {
		return render.View{}, repository.ErrNotLoaded
	}
	s.lastSelection = sel
	return s.view, nil
}

func (s *stubDeps) RenderHTML(_ context.Context, sel model.FilterSelection) (string, error) {
	if s.notLoaded {
		return "", repository.ErrNotLoaded
	}
	s.lastSelection = sel
	return s.html, nil
}

func (s *stubDeps) Reload(_ context.Context) error {
	s.reloads++
	return s.reloadErr
}

func (s *stubDeps) LoadError() error { return s.loadErr }

func (s *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"games": len(s.games)}
}

func loadedDeps() *stubDeps {
	return &stubDeps{
		games: []model.Game{
			{ID: 1, Division: "10U", Week: "1", Date: "2026-04-11", StartTime: "09:00",
				EndTime: "10:15", HomeTeam: "Sharks", AwayTeam: "Rays", Location: "Riverside Park", Field: "2"},
		},
		vocab: schedule.Vocabulary{
			Divisions: []string{"10U", "12U"},
			Dates:     []string{"2026-04-11"},
			Teams: []model.Team{
				{Name: "Sharks", Division: "10U"},
				{Name: "Rays", Division: "10U"},
				{Name: "Comets", Division: "12U"},
			},
		},
		view: render.View{Weeks: []render.WeekGroup{{Week: "1", Label: "Week 1"}}},
		html: `<table class="schedule"><tr><td>Sharks</td></tr></table>`,
	}
}

func newMux(deps *stubDeps, guard *api.Guard) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps, guard).Register(context.Background(), mux)
	return mux
}

func TestScheduleEndpoints(t *testing.T) {
	Convey("Given a loaded service behind the API", t, func() {
		deps := loadedDeps()
		mux := newMux(deps, nil)

		Convey("When GET /api/schedule", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))

			Convey("Then the grouped view comes back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(rec.Body.String(), ShouldContainSubstring, `"Week 1"`)
			})
		})

		Convey("When GET /api/schedule with filter parameters", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
				"/api/schedule?division=10U&team=Sharks&team=Rays&date=2026-04-11", nil))

			Convey("Then the selection reaches the service", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastSelection.Divisions.Has("10U"), ShouldBeTrue)
				So(deps.lastSelection.Teams.Has("Sharks"), ShouldBeTrue)
				So(deps.lastSelection.Teams.Has("Rays"), ShouldBeTrue)
				So(deps.lastSelection.Dates.Has("2026-04-11"), ShouldBeTrue)
			})
		})

		Convey("When GET /api/schedule/html", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule/html", nil))

			Convey("Then the table fragment comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/html")
				So(rec.Body.String(), ShouldContainSubstring, "<table")
			})
		})

		Convey("When POST hits a GET endpoint", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/schedule", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestScheduleNotLoaded(t *testing.T) {
	Convey("Given a service that has never loaded", t, func() {
		deps := &stubDeps{notLoaded: true, loadErr: source.ErrNetwork}
		mux := newMux(deps, nil)

		Convey("When GET /api/schedule", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))

			Convey("Then 503 carries the network failure message", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(rec.Body.String(), ShouldContainSubstring,
					"Unable to load schedule data. Please check your connection and try again.")
			})
		})

		Convey("When GET /api/schedule/html", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule/html", nil))

			Convey("Then the fragment is an error message", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(rec.Body.String(), ShouldContainSubstring, "error-message")
			})
		})

		Convey("When the failure was a parse error", func() {
			deps.loadErr = schedule.ErrParse
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/filters", nil))

			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(rec.Body.String(), ShouldContainSubstring,
				"Failed to parse schedule data. The file may be corrupted.")
		})

		Convey("When no attempt has finished yet", func() {
			deps.loadErr = nil
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))

			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(rec.Body.String(), ShouldContainSubstring, "not loaded yet")
		})
	})
}

func TestFiltersEndpoint(t *testing.T) {
	Convey("Given a loaded service behind the API", t, func() {
		deps := loadedDeps()
		mux := newMux(deps, nil)

		Convey("When GET /api/filters", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/filters", nil))

			Convey("Then the full vocabulary comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"10U"`)
				So(rec.Body.String(), ShouldContainSubstring, `"Comets"`)
			})
		})

		Convey("When GET /api/filters scoped to a division", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/filters?division=10U", nil))

			Convey("Then teams narrow while divisions stay complete", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"Sharks"`)
				So(rec.Body.String(), ShouldNotContainSubstring, `"Comets"`)
				So(rec.Body.String(), ShouldContainSubstring, `"12U"`)
			})
		})
	})
}

func TestExportEndpoints(t *testing.T) {
	Convey("Given a loaded service behind the API", t, func() {
		deps := loadedDeps()
		mux := newMux(deps, nil)

		Convey("When GET /api/schedule.csv", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule.csv", nil))

			Convey("Then a CSV attachment comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/csv")
				So(rec.Header().Get("Content-Disposition"), ShouldContainSubstring, "schedule.csv")
				So(rec.Body.String(), ShouldContainSubstring, "GameID,Division,Week,Date")
				So(rec.Body.String(), ShouldContainSubstring, "Sharks")
			})
		})

		Convey("When GET /api/schedule.ics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule.ics", nil))

			Convey("Then a calendar with one event comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/calendar")
				So(rec.Body.String(), ShouldContainSubstring, "BEGIN:VCALENDAR")
				So(rec.Body.String(), ShouldContainSubstring, "SUMMARY:Sharks vs Rays")
				So(rec.Body.String(), ShouldContainSubstring, "DTSTART:20260411T090000")
				So(rec.Body.String(), ShouldContainSubstring, "LOCATION:Riverside Park - 2")
			})
		})

		Convey("When a game has no parseable date", func() {
			deps.games = append(deps.games, model.Game{ID: 2, Date: "TBD", HomeTeam: "A", AwayTeam: "B"})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule.ics", nil))

			Convey("Then that game is omitted from the calendar", func() {
				So(rec.Body.String(), ShouldNotContainSubstring, "SUMMARY:A vs B")
			})
		})
	})
}

func TestReloadEndpoint(t *testing.T) {
	Convey("Given an unguarded API", t, func() {
		deps := loadedDeps()
		mux := newMux(deps, nil)

		Convey("When POST /api/reload", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))

			Convey("Then the reload runs", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.reloads, ShouldEqual, 1)
			})
		})

		Convey("When the reload attempt fails", func() {
			deps.reloadErr = source.ErrNetwork
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))

			Convey("Then 502 carries the user-facing message", func() {
				So(rec.Code, ShouldEqual, http.StatusBadGateway)
				So(rec.Body.String(), ShouldContainSubstring, "Unable to load schedule data")
			})
		})
	})

	Convey("Given a guarded API", t, func() {
		hash, err := api.HashPassword("open sesame")
		So(err, ShouldBeNil)

		path := filepath.Join(t.TempDir(), "admin.secret")
		So(os.WriteFile(path, []byte("admin:"+hash+"\n"), 0o600), ShouldBeNil)

		guard, err := api.LoadGuard(path)
		So(err, ShouldBeNil)
		So(guard, ShouldNotBeNil)

		deps := loadedDeps()
		mux := newMux(deps, guard)

		Convey("When POST /api/reload without credentials", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))

			Convey("Then 401 with a Basic Auth challenge", func() {
				So(rec.Code, ShouldEqual, http.StatusUnauthorized)
				So(rec.Header().Get("WWW-Authenticate"), ShouldContainSubstring, "Basic")
				So(deps.reloads, ShouldEqual, 0)
			})
		})

		Convey("When POST /api/reload with a wrong password", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
			req.SetBasicAuth("admin", "guess")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
			So(deps.reloads, ShouldEqual, 0)
		})

		Convey("When POST /api/reload with valid credentials", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
			req.SetBasicAuth("admin", "open sesame")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.reloads, ShouldEqual, 1)
		})
	})
}

func TestGuardLoading(t *testing.T) {
	Convey("Given guard credential files", t, func() {
		Convey("An empty path disables the guard", func() {
			guard, err := api.LoadGuard("")
			So(err, ShouldBeNil)
			So(guard, ShouldBeNil)
		})

		Convey("A malformed file is rejected", func() {
			path := filepath.Join(t.TempDir(), "bad.secret")
			So(os.WriteFile(path, []byte("no-colon-here\n"), 0o600), ShouldBeNil)

			_, err := api.LoadGuard(path)
			So(err, ShouldNotBeNil)
		})

		Convey("A missing file is rejected", func() {
			_, err := api.LoadGuard(filepath.Join(t.TempDir(), "absent.secret"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given the API routes", t, func() {
		deps := loadedDeps()
		mux := newMux(deps, nil)

		Convey("GET /api/stats returns service statistics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"games":1`)
		})

		Convey("GET /healthz serves the metrics registry", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
