package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

// Header matches the column names the CSV seed importer accepts, so an export
// can be fed back through POST /api/v1/seed.
var Header = []string{"id", "title", "price", "description", "category", "image", "sold", "dateOfSale"}

// Lister pages through transactions.
type Lister interface {
	List(ctx context.Context, filter product.ListFilter) (*product.Page, error)
}

// Service handles the export of a month's transactions.
type Service struct {
	transactions Lister
}

// NewService creates a new export Service.
func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions}
}

// Summary describes a finished export.
type Summary struct {
	Rows        int
	Sold        int
	SoldAmount  string
	Month       int
	GeneratedAt time.Time
}

// Export writes every transaction matching filter to w as CSV, walking all pages.
// Nothing is written when the first page cannot be loaded.
func (s *Service) Export(ctx context.Context, filter product.ListFilter, w io.Writer) (*Summary, error) {
	filter.Page = 1
	filter.PerPage = product.MaxPerPage

	page, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	summary := &Summary{Month: filter.Month, GeneratedAt: time.Now().UTC()}
	soldAmount := decimal.Zero

	for {
		for _, tx := range page.Items {
			if err := cw.Write(record(tx)); err != nil {
				return nil, fmt.Errorf("writing transaction %s: %w", tx.SourceRef, err)
			}

			summary.Rows++

			if tx.Sold {
				summary.Sold++
				soldAmount = soldAmount.Add(tx.Price)
			}
		}

		if filter.Page >= page.TotalPages {
			break
		}

		filter.Page++

		page, err = s.transactions.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("listing transactions page %d: %w", filter.Page, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	summary.SoldAmount = soldAmount.StringFixed(2)

	return summary, nil
}

func record(tx *product.Transaction) []string {
	return []string{
		tx.SourceRef,
		tx.Title,
		tx.Price.String(),
		tx.Description,
		tx.Category,
		tx.Image,
		strconv.FormatBool(tx.Sold),
		tx.DateOfSale.UTC().Format(time.RFC3339),
	}
}

// Filename builds the attachment name for an export, e.g. transactions_march_20260301.csv.
func Filename(monthLabel string, now time.Time) string {
	name := strings.ToLower(strings.ReplaceAll(monthLabel, " ", "_"))
	if name == "" {
		name = "all"
	}

	return fmt.Sprintf("transactions_%s_%s.csv", name, now.Format("20060102"))
}
