package web

import (
	"context"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

// serviceSource serves dashboard data straight from the product service.
type serviceSource struct {
	svc *product.Service
}

var _ dashboard.Source = serviceSource{}

func (s serviceSource) FetchTransactionsPage(ctx context.Context, q dashboard.Query) (*dashboard.Page, error) {
	page, err := s.svc.List(ctx, product.ListFilter{
		Search:  q.Search,
		Month:   q.Month,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dashboard.Transaction, len(page.Items))
	for i, tx := range page.Items {
		items[i] = dashboard.Transaction{
			ID:          tx.SourceRef,
			Title:       tx.Title,
			Description: tx.Description,
			Price:       tx.Price,
			Category:    tx.Category,
			Image:       tx.Image,
			Sold:        tx.Sold,
			DateOfSale:  tx.DateOfSale,
		}
	}

	return &dashboard.Page{Items: items, TotalPages: page.TotalPages}, nil
}

func (s serviceSource) FetchStatistics(ctx context.Context, month int) (*dashboard.Statistics, error) {
	st, err := s.svc.Statistics(ctx, month)
	if err != nil {
		return nil, err
	}

	return &dashboard.Statistics{
		TotalSaleAmount:   st.TotalSaleAmount,
		TotalSoldItems:    st.TotalSoldItems,
		TotalNotSoldItems: st.TotalNotSoldItems,
	}, nil
}

func (s serviceSource) FetchHistogram(ctx context.Context, month int) ([]dashboard.Bucket, error) {
	buckets, err := s.svc.PriceHistogram(ctx, month)
	if err != nil {
		return nil, err
	}

	out := make([]dashboard.Bucket, len(buckets))
	for i, b := range buckets {
		out[i] = dashboard.Bucket{Range: b.Range, Count: b.Count}
	}

	return out, nil
}
