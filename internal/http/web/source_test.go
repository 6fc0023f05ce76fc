package web

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

func TestServiceSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := product.NewMockRepository(ctrl)
	src := serviceSource{svc: product.NewService(repo, 4, time.Minute)}

	repo.EXPECT().
		ListTransactions(gomock.Any(), product.ListFilter{Search: "ring", Month: 2, Page: 1, PerPage: 10}).
		Return([]*product.Transaction{{SourceRef: "9", Title: "Gold ring", Price: decimal.NewFromInt(168)}}, 11, nil)
	repo.EXPECT().MonthStatistics(gomock.Any(), 2).Return(&product.Statistics{TotalNotSoldItems: 4}, nil)
	repo.EXPECT().PriceBucketCounts(gomock.Any(), 2).Return(map[int]int64{1: 1}, nil)

	page, err := src.FetchTransactionsPage(context.Background(), dashboard.Query{Search: "ring", Month: 2, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "9", page.Items[0].ID)

	st, err := src.FetchStatistics(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.TotalNotSoldItems)

	buckets, err := src.FetchHistogram(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, buckets, 10)
	assert.Equal(t, dashboard.Bucket{Range: "101-200", Count: 1}, buckets[1])

	_, err = src.FetchStatistics(context.Background(), 0)
	assert.ErrorIs(t, err, product.ErrInvalidMonth)
}
