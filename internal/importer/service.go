package importer

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesdash/internal/importer/csvfeed"
	"github.com/MrJamesThe3rd/salesdash/internal/importer/jsonfeed"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

// maxFeedSize caps remote feeds.
const maxFeedSize = 32 << 20

type Service struct {
	importers map[Format]Importer
	http      *http.Client
}

func NewService(timeout time.Duration) *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatJSON: jsonfeed.NewParser(),
			FormatCSV:  csvfeed.NewParser(),
		},
		http: &http.Client{Timeout: timeout},
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]product.CreateParams, error) {
	importer, ok := s.importers[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// Fetch downloads and parses the feed at rawURL. The format comes from the
// response Content-Type, then the URL extension, and defaults to JSON.
func (s *Service) Fetch(ctx context.Context, rawURL string) ([]product.CreateParams, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid feed url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed: unexpected status %d", resp.StatusCode)
	}

	format := detectFormat(resp.Header.Get("Content-Type"), u.Path)

	return s.Import(format, io.LimitReader(resp.Body, maxFeedSize))
}

func detectFormat(contentType, urlPath string) Format {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case strings.HasSuffix(mediaType, "json"):
			return FormatJSON
		case strings.HasSuffix(mediaType, "csv"):
			return FormatCSV
		}
	}

	if strings.EqualFold(path.Ext(urlPath), ".csv") {
		return FormatCSV
	}

	return FormatJSON
}
