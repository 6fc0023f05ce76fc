package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
	"github.com/MrJamesThe3rd/salesdash/internal/export"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
		return
	}

	filter := product.ListFilter{
		Month:  month,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(dashboard.MonthLabel(month), time.Now())))

	cw := &countingWriter{w: w}

	summary, err := h.svc.Export(r.Context(), filter, cw)
	if err != nil {
		if cw.n > 0 {
			// The status line is already out; the client sees a truncated file.
			slog.Error("export interrupted", "month", month, "error", err)
			return
		}

		w.Header().Del("Content-Disposition")

		if errors.Is(err, product.ErrInvalidMonth) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to export transactions", "month", month, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	slog.Info("transactions exported",
		"month", summary.Month,
		"rows", summary.Rows,
		"sold", summary.Sold,
		"sold_amount", summary.SoldAmount,
	)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
