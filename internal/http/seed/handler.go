package seed

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdash/internal/importer"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

const maxUploadSize = 32 << 20

var errFileRequired = errors.New("file field is required")

type Handler struct {
	importSvc  *importer.Service
	productSvc *product.Service
	feedURL    string
}

func NewHandler(importSvc *importer.Service, productSvc *product.Service, feedURL string) *Handler {
	return &Handler{
		importSvc:  importSvc,
		productSvc: productSvc,
		feedURL:    feedURL,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.seed)
}

type seedResponse struct {
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Total    int    `json:"total"`
	Source   string `json:"source"`
}

// seed accepts a multipart upload, a raw JSON/CSV body, or an empty body to
// pull the configured feed URL.
func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		params []product.CreateParams
		source string
		err    error
	)

	switch {
	case mediaType == "multipart/form-data":
		params, source, err = h.fromUpload(r)
	case r.ContentLength == 0:
		if h.feedURL == "" {
			http.Error(w, "no file uploaded and no seed url configured", http.StatusBadRequest)
			return
		}

		source = h.feedURL
		params, err = h.importSvc.Fetch(r.Context(), h.feedURL)
		if err != nil {
			slog.Error("failed to fetch seed feed", "url", h.feedURL, "error", err)
			http.Error(w, "failed to fetch seed feed: "+err.Error(), http.StatusBadGateway)

			return
		}
	default:
		source = "body"
		params, err = h.importSvc.Import(bodyFormat(r, mediaType), r.Body)
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.productSvc.Import(r.Context(), params)
	if err != nil {
		slog.Error("failed to import seed", "source", source, "error", err)
		http.Error(w, "failed to import seed", http.StatusInternalServerError)

		return
	}

	slog.Info("seeded transactions", "source", source, "inserted", result.Inserted, "updated", result.Updated)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(seedResponse{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    len(params),
		Source:   source,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) fromUpload(r *http.Request) ([]product.CreateParams, string, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errFileRequired
	}
	defer file.Close()

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = formatFromName(header.Filename)
	}

	params, err := h.importSvc.Import(format, file)

	return params, header.Filename, err
}

func bodyFormat(r *http.Request, mediaType string) importer.Format {
	if f := r.URL.Query().Get("format"); f != "" {
		return importer.Format(f)
	}

	if strings.HasSuffix(mediaType, "csv") {
		return importer.FormatCSV
	}

	return importer.FormatJSON
}

func formatFromName(name string) importer.Format {
	if strings.EqualFold(path.Ext(name), ".csv") {
		return importer.FormatCSV
	}

	return importer.FormatJSON
}
