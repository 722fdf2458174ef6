// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/sidelinehq/matchday/internal/adapters/source"
)

// ReloadHandler handles admin reload requests.
type ReloadHandler struct {
	deps  Dependencies
	guard *Guard
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps Dependencies, guard *Guard) *ReloadHandler {
	return &ReloadHandler{deps: deps, guard: guard}
}

type reloadResponse struct {
	Status string `json:"status"`
}

// HandlePostReload handles POST /api/reload requests. The reload is a
// single attempt: on failure the previous snapshot keeps serving and the
// source's user-facing message comes back with a 502.
func (h *ReloadHandler) HandlePostReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	user, pass, ok := r.BasicAuth()
	if !h.guard.Authorize(user, pass, ok) {
		w.Header().Set("WWW-Authenticate", `Basic realm="Schedule Admin"`)
		writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
		return
	}

	if err := h.deps.Reload(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, source.FailureKind(err), errors.New(source.UserMessage(err)))
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: "reloaded"})
}
