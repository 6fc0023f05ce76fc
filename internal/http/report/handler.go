package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

type Handler struct {
	svc *product.Service
}

func NewHandler(svc *product.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.list)
	r.Get("/transactions/{id}", h.get)
	r.Get("/statistics", h.statistics)
	r.Get("/bar-chart", h.barChart)
	r.Get("/dashboard", h.dashboard)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toPageResponse(page))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toTransactionResponse(tx))
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.Statistics(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toStatisticsResponse(st))
}

func (h *Handler) barChart(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buckets, err := h.svc.PriceHistogram(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toBucketResponses(buckets))
}

// dashboard answers all three queries in one round trip.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		page    *product.Page
		st      *product.Statistics
		buckets []product.Bucket
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		page, err = h.svc.List(ctx, filter)

		return err
	})

	g.Go(func() error {
		var err error
		st, err = h.svc.Statistics(ctx, filter.Month)

		return err
	})

	g.Go(func() error {
		var err error
		buckets, err = h.svc.PriceHistogram(ctx, filter.Month)

		return err
	})

	if err := g.Wait(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, dashboardResponse{
		Month:        filter.Month,
		Transactions: toPageResponse(page),
		Statistics:   toStatisticsResponse(st),
		BarChart:     toBucketResponses(buckets),
	})
}

func parseMonth(r *http.Request) (int, error) {
	s := r.URL.Query().Get("month")
	if s == "" {
		return 0, errors.New("month is required")
	}

	month, err := strconv.Atoi(s)
	if err != nil || month < 1 || month > 12 {
		return 0, product.ErrInvalidMonth
	}

	return month, nil
}

func parseListFilter(r *http.Request) (product.ListFilter, error) {
	month, err := parseMonth(r)
	if err != nil {
		return product.ListFilter{}, err
	}

	q := r.URL.Query()

	filter := product.ListFilter{
		Month:  month,
		Search: q.Get("search"),
	}

	if s := q.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil {
			return product.ListFilter{}, errors.New("invalid page")
		}

		filter.Page = page
	}

	if s := q.Get("perPage"); s != "" {
		perPage, err := strconv.Atoi(s)
		if err != nil {
			return product.ListFilter{}, errors.New("invalid perPage")
		}

		filter.PerPage = perPage
	}

	return filter.Normalize(), nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrInvalidMonth):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, product.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("report query failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
