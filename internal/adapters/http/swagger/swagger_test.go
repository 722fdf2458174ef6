package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/sidelinehq/matchday/internal/adapters/http/swagger"
)

func TestSwaggerRoutes(t *testing.T) {
	Convey("Given the docs routes registered on a mux", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		Convey("Then /api-docs serves the ReDoc page", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/html")
			So(rec.Body.String(), ShouldContainSubstring, "Redoc.init")
		})

		Convey("Then /openapi.yaml serves the spec", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "openapi: 3.0.3")
			So(rec.Body.String(), ShouldContainSubstring, "/api/schedule")
		})
	})
}

func TestSwaggerNilMux(t *testing.T) {
	Convey("Registering on a nil mux panics", t, func() {
		So(func() { swagger.Register(context.Background(), nil) }, ShouldPanic)
	})
}
