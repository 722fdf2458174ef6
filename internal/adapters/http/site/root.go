// Package site serves the embedded schedule site.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded site routes to mux. The API routes are
// registered separately and take precedence over this catch-all.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.FileServer(FS())
	mux.Handle("/", files)
}
