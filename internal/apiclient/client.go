// Package apiclient reads dashboard data from the salesdash HTTP API.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

var _ dashboard.Source = (*Client)(nil)

func (c *Client) FetchTransactionsPage(ctx context.Context, q dashboard.Query) (*dashboard.Page, error) {
	params := url.Values{}
	params.Set("month", strconv.Itoa(q.Month))
	params.Set("search", q.Search)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("perPage", strconv.Itoa(q.PerPage))

	var page dashboard.Page
	if err := c.get(ctx, "/transactions", params, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) FetchStatistics(ctx context.Context, month int) (*dashboard.Statistics, error) {
	var st *dashboard.Statistics
	if err := c.get(ctx, "/statistics", monthParams(month), &st); err != nil {
		return nil, err
	}

	return st, nil
}

func (c *Client) FetchHistogram(ctx context.Context, month int) ([]dashboard.Bucket, error) {
	var buckets []dashboard.Bucket
	if err := c.get(ctx, "/bar-chart", monthParams(month), &buckets); err != nil {
		return nil, err
	}

	return buckets, nil
}

func monthParams(month int) url.Values {
	return url.Values{"month": {strconv.Itoa(month)}}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}
