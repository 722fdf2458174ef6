package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/sidelinehq/matchday/internal/adapters/repository"
	service "github.com/sidelinehq/matchday/internal/app"
	"github.com/sidelinehq/matchday/internal/domain/model"
	"github.com/sidelinehq/matchday/internal/domain/render"
	"github.com/sidelinehq/matchday/pkg/logger"
)

const sampleSchedule = `[
	{"GameID": 1, "Division": "10U Blue", "Week": "1", "Date": "2026-04-11",
	 "Start Time": "09:00", "End Time": "10:15", "Home Team": "Sharks", "Away Team": "Rays",
	 "Location": "Riverside Park", "Field": "Field 2"},
	{"GameID": 2, "Division": "12U", "Week": "1", "Date": "2026-04-11",
	 "Start Time": "10:30", "End Time": "11:45", "Home Team": "Comets", "Away Team": "Hawks",
	 "Location": "Riverside Park", "Field": "Field 2"},
	{"GameID": 3, "Division": "10U Blue", "Week": "2", "Date": "2026-04-18",
	 "Start Time": "09:00", "End Time": "10:15", "Home Team": "Rays", "Away Team": "Sharks",
	 "Location": "Lincoln Fields", "Field": "A"}
]`

func writeSchedule(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixedClock(date string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse("2006-01-02", date)
		return t
	}
}

func TestServiceLifecycle(t *testing.T) {
	// Initialize logging for tests
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a service pointed at a valid schedule file", t, func() {
		svc := service.New(
			service.WithSource(writeSchedule(t, sampleSchedule)),
			service.WithRenderer(render.NewRenderer(render.WithNow(fixedClock("2026-04-15")))),
		)

		Convey("When the service starts", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			So(err, ShouldBeNil)
			So(svc.LoadError(), ShouldBeNil)

			Convey("Then the full schedule is available", func() {
				games, err := svc.Schedule(ctx, model.FilterSelection{})
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 3)
			})

			Convey("Then the vocabulary is derived from the data", func() {
				vocab, err := svc.Vocabulary(ctx)
				So(err, ShouldBeNil)
				So(vocab.Divisions, ShouldResemble, []string{"10U Blue", "12U"})
				So(vocab.Dates, ShouldResemble, []string{"2026-04-11", "2026-04-18"})
				So(vocab.Teams, ShouldHaveLength, 4)
			})

			Convey("Then filtering narrows the result", func() {
				sel := model.FilterSelection{Divisions: model.NewStringSet("12U")}
				games, err := svc.Schedule(ctx, sel)
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 1)
				So(games[0].HomeTeam, ShouldEqual, "Comets")
			})

			Convey("Then the view marks past dates as completed", func() {
				view, err := svc.View(ctx, model.FilterSelection{})
				So(err, ShouldBeNil)
				So(view.Empty, ShouldBeFalse)
				So(view.Weeks, ShouldHaveLength, 2)
				So(view.Weeks[0].Completed, ShouldBeTrue)
				So(view.Weeks[1].Completed, ShouldBeFalse)
			})

			Convey("Then rendered HTML contains the schedule rows", func() {
				html, err := svc.RenderHTML(ctx, model.FilterSelection{})
				So(err, ShouldBeNil)
				So(html, ShouldContainSubstring, "Sharks")
				So(html, ShouldContainSubstring, "9:00 AM - 10:15 AM")
			})

			Convey("Then stats report the loaded counts", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["games"], ShouldEqual, 3)
				So(stats["attemptID"], ShouldNotBeEmpty)
			})
		})
	})
}

func TestServiceLoadFailure(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a service pointed at a missing file", t, func() {
		svc := service.New(service.WithSource(filepath.Join(t.TempDir(), "nope.json")))

		Convey("When the service starts", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then startup still succeeds, with the error retained", func() {
				So(err, ShouldBeNil)
				So(svc.LoadError(), ShouldNotBeNil)
			})

			Convey("Then queries report not loaded", func() {
				_, err := svc.Schedule(ctx, model.FilterSelection{})
				So(err, ShouldEqual, repository.ErrNotLoaded)

				_, err = svc.Vocabulary(ctx)
				So(err, ShouldEqual, repository.ErrNotLoaded)
			})
		})
	})

	Convey("Given a service whose source is corrupted then repaired", t, func() {
		path := writeSchedule(t, "{not json")
		svc := service.New(service.WithSource(path))

		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		So(svc.LoadError(), ShouldNotBeNil)

		Convey("When the file is repaired and reloaded", func() {
			So(os.WriteFile(path, []byte(sampleSchedule), 0o644), ShouldBeNil)
			So(svc.Reload(ctx), ShouldBeNil)

			Convey("Then the error clears and data is served", func() {
				So(svc.LoadError(), ShouldBeNil)
				games, err := svc.Schedule(ctx, model.FilterSelection{})
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 3)
			})
		})
	})
}

func TestServiceReloadKeepsPreviousSnapshot(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a running service with loaded data", t, func() {
		path := writeSchedule(t, sampleSchedule)
		svc := service.New(service.WithSource(path))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a reload attempt fails", func() {
			So(os.Remove(path), ShouldBeNil)
			err := svc.Reload(ctx)

			Convey("Then the previous snapshot keeps serving", func() {
				So(err, ShouldNotBeNil)
				So(svc.LoadError(), ShouldNotBeNil)

				games, gerr := svc.Schedule(ctx, model.FilterSelection{})
				So(gerr, ShouldBeNil)
				So(games, ShouldHaveLength, 3)
			})
		})
	})
}

func TestServiceDefaultDivision(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given games without a division", t, func() {
		payload := `[{"GameID": 9, "Home Team": "A", "Away Team": "B", "Date": "2026-05-01"}]`
		svc := service.New(
			service.WithSource(writeSchedule(t, payload)),
			service.WithDefaultDivision("Open Play"),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the configured default label applies", func() {
			vocab, err := svc.Vocabulary(ctx)
			So(err, ShouldBeNil)
			So(vocab.Divisions, ShouldResemble, []string{"Open Play"})
		})
	})
}

func TestServiceEmptySelectionResult(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a loaded service", t, func() {
		svc := service.New(service.WithSource(writeSchedule(t, sampleSchedule)))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a selection matches nothing", func() {
			sel := model.FilterSelection{Dates: model.NewStringSet("1999-01-01")}
			view, err := svc.View(ctx, sel)

			Convey("Then the view is flagged empty", func() {
				So(err, ShouldBeNil)
				So(view.Empty, ShouldBeTrue)
				So(view.Weeks, ShouldBeEmpty)
			})

			Convey("And HTML shows the no-results message", func() {
				html, herr := svc.RenderHTML(ctx, sel)
				So(herr, ShouldBeNil)
				So(html, ShouldContainSubstring, "No games found matching your criteria.")
			})
		})
	})
}
