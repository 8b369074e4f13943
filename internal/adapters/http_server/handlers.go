// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_app/internal/adapters/web"
	"hotel_app/internal/app"
	"hotel_app/internal/domain"
)

type Handlers struct{ Pages *app.PageService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// render routes only; probes and scrapes are never limited
	s.mux.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		r.Get("/", h.page)
		r.Get("/fragment", h.fragment)
		r.Get("/v1/page", h.pageJSON)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	return weakETag(body), body
}

func weakETag(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if inm := r.Header.Get("If-None-Match"); etag != "" && inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// renderPass reads the control values from the query string and runs one
// render pass. It writes the problem response itself on failure.
func (h *Handlers) renderPass(w http.ResponseWriter, r *http.Request) (domain.PageView, bool) {
	q := r.URL.Query()
	f, err := domain.ParseFilters(q.Get("city"), q.Get("guests"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filters", detail(err))
		return domain.PageView{}, false
	}
	pv, err := h.Pages.Render(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Str("city", f.City.String()).Int("guests", f.Guests.Int()).Msg("render failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "render failed")
		return domain.PageView{}, false
	}
	return pv, true
}

func detail(err error) string {
	var parts []string
	if errors.Is(err, domain.ErrInvalidCity) {
		parts = append(parts, "city must be one of Delhi, Mumbai, Bangalore")
	}
	if errors.Is(err, domain.ErrInvalidGuests) {
		parts = append(parts, "guests must be an integer between 1 and 10")
	}
	if len(parts) == 0 {
		return err.Error()
	}
	return strings.Join(parts, "; ")
}

func (h *Handlers) page(w http.ResponseWriter, r *http.Request) {
	pv, ok := h.renderPass(w, r)
	if !ok {
		return
	}
	h.writeHTML(w, r, pv, web.RenderPage)
}

func (h *Handlers) fragment(w http.ResponseWriter, r *http.Request) {
	pv, ok := h.renderPass(w, r)
	if !ok {
		return
	}
	h.writeHTML(w, r, pv, web.RenderMessage)
}

func (h *Handlers) writeHTML(w http.ResponseWriter, r *http.Request, pv domain.PageView, fn func(io.Writer, domain.PageView) error) {
	var buf bytes.Buffer
	if err := fn(&buf, pv); err != nil {
		log.Error().Err(err).Msg("template execution failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "render failed")
		return
	}
	etag := weakETag(buf.Bytes())
	if notModified(w, r, etag) {
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write HTML body")
	}
}

func (h *Handlers) pageJSON(w http.ResponseWriter, r *http.Request) {
	pv, ok := h.renderPass(w, r)
	if !ok {
		return
	}
	etag, body := calcETagAndBody(pv)
	if notModified(w, r, etag) {
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write page body")
	}
}
