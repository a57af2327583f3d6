// Package http exposes the aggregated ceremony state as a JSON API for the
// dashboard frontend.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zkceremonies/setupboard/client"
	"github.com/zkceremonies/setupboard/log"
	"github.com/zkceremonies/setupboard/store"
)

// New creates the HTTP handler serving project aggregates read through c.
func New(c *client.Client, l log.Logger) http.Handler {
	h := &handler{client: c, log: l.Named("http")}

	mux := chi.NewMux()
	mux.Get("/health", h.Health)
	mux.Route("/v1", func(r chi.Router) {
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/{ceremonyID}", h.GetProject)
		r.Get("/projects/{ceremonyID}/avatars", h.GetAvatars)
	})
	return mux
}

type handler struct {
	client *client.Client
	log    log.Logger
}

func (h *handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ceremonies, err := h.client.ListCeremonies(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, map[string]interface{}{"ceremonies": ceremonies})
}

func (h *handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ceremonyID")
	project, err := h.client.FetchProject(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, project)
}

func (h *handler) GetAvatars(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ceremonyID")
	urls, err := h.client.Avatars(r.Context(), id)
	if err != nil && urls == nil {
		h.fail(w, r, err)
		return
	}
	// Partial failures still serve whatever came back.
	if err != nil {
		h.log.Warnw("serving partial avatar set", "ceremony", id, "err", err)
	}
	h.respond(w, r, map[string]interface{}{
		"avatarUrls": urls,
		"partial":    err != nil,
	})
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorw("response encoding failed", "path", r.URL.Path, "err", err)
	}
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, store.ErrUnavailable):
		code = http.StatusBadGateway
	}
	h.log.Warnw("request failed", "path", r.URL.Path, "code", code, "err", err)
	http.Error(w, http.StatusText(code), code)
}
