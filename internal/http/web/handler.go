// Package web serves the server-rendered dashboard page.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Handler struct {
	src          dashboard.Source
	tmpl         *template.Template
	perPage      int
	defaultMonth int
	loc          *time.Location
}

func NewHandler(svc *product.Service, perPage, defaultMonth int, loc *time.Location) (*Handler, error) {
	return newHandler(serviceSource{svc: svc}, perPage, defaultMonth, loc)
}

func newHandler(src dashboard.Source, perPage, defaultMonth int, loc *time.Location) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		src:          src,
		tmpl:         tmpl,
		perPage:      perPage,
		defaultMonth: defaultMonth,
		loc:          loc,
	}, nil
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(securityHeaders)
	r.Get("/", h.index)
}

// index renders the whole page, or only the content fragment for htmx requests.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	state := h.stateFromQuery(r)

	data := dashboard.Load(r.Context(), h.src, state, h.perPage)

	state, changed := state.Apply(dashboard.PagesReported{TotalPages: data.TotalPages})
	if changed {
		data = dashboard.Load(r.Context(), h.src, state, h.perPage)
	}

	view := dashboard.Render(state, data, dashboard.LocaleFromAcceptLanguage(r.Header.Get("Accept-Language"), h.loc))

	name := "page"
	if r.Header.Get("HX-Request") == "true" {
		name = "content"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request, Accept-Language")

	if err := h.tmpl.ExecuteTemplate(w, name, view); err != nil {
		slog.Error("failed to render dashboard", "error", err)
	}
}

// stateFromQuery builds the view state. Filters reset the page unless one is given explicitly.
func (h *Handler) stateFromQuery(r *http.Request) dashboard.State {
	q := r.URL.Query()

	state := dashboard.NewState(h.defaultMonth)

	if month, err := strconv.Atoi(q.Get("month")); err == nil {
		state, _ = state.Apply(dashboard.SelectMonth{Month: month})
	}

	state, _ = state.Apply(dashboard.ChangeSearch{Search: q.Get("search")})

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		state.Page = page
	}

	return state
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
