package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Load runs the three fetches for s concurrently and waits for all of them.
// A failed fetch is logged and leaves its part of Data empty.
func Load(ctx context.Context, src Source, s State, perPage int) Data {
	req := s.Requests(perPage)

	var (
		g    errgroup.Group
		data Data
	)

	g.Go(func() error {
		page, err := src.FetchTransactionsPage(ctx, req.Transactions)
		if err != nil {
			slog.Warn("failed to fetch transactions", "month", req.Transactions.Month, "page", req.Transactions.Page, "error", err)
			return nil
		}

		if page != nil {
			data.Transactions = page.Items
			data.TotalPages = page.TotalPages
		}

		return nil
	})

	g.Go(func() error {
		st, err := src.FetchStatistics(ctx, req.Statistics)
		if err != nil {
			slog.Warn("failed to fetch statistics", "month", req.Statistics, "error", err)
			return nil
		}

		data.Statistics = st

		return nil
	})

	g.Go(func() error {
		buckets, err := src.FetchHistogram(ctx, req.Histogram)
		if err != nil {
			slog.Warn("failed to fetch histogram", "month", req.Histogram, "error", err)
			return nil
		}

		data.Histogram = buckets

		return nil
	})

	// Every goroutine swallows its error.
	_ = g.Wait()

	return data
}
