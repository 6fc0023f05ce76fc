package product_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

func newService(repo product.Repository) *product.Service {
	return product.NewService(repo, 8, time.Minute)
}

func TestService_List(t *testing.T) {
	type args struct {
		filter product.ListFilter
	}

	type testCase struct {
		name           string
		args           args
		setupMock      func(m *product.MockRepository)
		wantPage       int
		wantPerPage    int
		wantTotalPages int
		wantErr        error
	}

	tests := []testCase{
		{
			name: "Defaults",
			args: args{filter: product.ListFilter{Month: 3}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), product.ListFilter{Month: 3, Page: 1, PerPage: 10}).
					Return([]*product.Transaction{{ID: uuid.New()}}, 21, nil)
			},
			wantPage:       1,
			wantPerPage:    10,
			wantTotalPages: 3,
		},
		{
			name: "ClampsPerPage",
			args: args{filter: product.ListFilter{Month: 1, Page: 2, PerPage: 1000, Search: "shirt"}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), product.ListFilter{Month: 1, Page: 2, PerPage: 100, Search: "shirt"}).
					Return(nil, 100, nil)
			},
			wantPage:       2,
			wantPerPage:    100,
			wantTotalPages: 1,
		},
		{
			name: "NoMatches",
			args: args{filter: product.ListFilter{Month: 12, Page: -4}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), product.ListFilter{Month: 12, Page: 1, PerPage: 10}).
					Return(nil, 0, nil)
			},
			wantPage:       1,
			wantPerPage:    10,
			wantTotalPages: 0,
		},
		{
			name:    "InvalidMonth",
			args:    args{filter: product.ListFilter{Month: 13}},
			wantErr: product.ErrInvalidMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := newService(repo).List(context.Background(), tt.args.filter)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, got.Items)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPerPage, got.PerPage)
			assert.Equal(t, tt.wantTotalPages, got.TotalPages)
		})
	}
}

func TestService_List_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("db error"))

	_, err := newService(repo).List(context.Background(), product.ListFilter{Month: 3})
	assert.Error(t, err)
}

func TestService_Statistics_Cached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := newService(repo)

	want := &product.Statistics{
		TotalSaleAmount:   decimal.RequireFromString("1024.50"),
		TotalSoldItems:    4,
		TotalNotSoldItems: 2,
	}

	repo.EXPECT().MonthStatistics(gomock.Any(), 3).Return(want, nil).Times(1)

	for range 3 {
		got, err := svc.Statistics(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, want.TotalSaleAmount.Equal(got.TotalSaleAmount))
		assert.Equal(t, want.TotalSoldItems, got.TotalSoldItems)
		assert.Equal(t, want.TotalNotSoldItems, got.TotalNotSoldItems)
	}
}

func TestService_Statistics_InvalidMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := newService(product.NewMockRepository(ctrl)).Statistics(context.Background(), 0)
	assert.ErrorIs(t, err, product.ErrInvalidMonth)
}

func TestService_PriceHistogram(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	repo.EXPECT().
		PriceBucketCounts(gomock.Any(), 7).
		Return(map[int]int64{0: 5, 3: 1, 9: 2}, nil).
		Times(1)

	svc := newService(repo)

	got, err := svc.PriceHistogram(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, len(product.PriceRanges))

	for i, b := range got {
		assert.Equal(t, product.PriceRanges[i], b.Range)
	}

	assert.Equal(t, int64(5), got[0].Count)
	assert.Equal(t, int64(0), got[1].Count)
	assert.Equal(t, int64(1), got[3].Count)
	assert.Equal(t, int64(2), got[9].Count)

	// Mutating the result must not leak into the cache.
	got[0].Count = 99

	again, err := svc.PriceHistogram(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), again[0].Count)
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)
	svc := newService(repo)

	stats := &product.Statistics{TotalSoldItems: 1}

	// Warm the cache, import, then expect a second repository hit.
	repo.EXPECT().MonthStatistics(gomock.Any(), 3).Return(stats, nil).Times(2)

	_, err := svc.Statistics(context.Background(), 3)
	require.NoError(t, err)

	params := []product.CreateParams{
		{SourceRef: "1", Title: "Backpack", Price: decimal.RequireFromString("109.95"), Sold: true},
		{SourceRef: "2", Title: "Jacket", Price: decimal.RequireFromString("55.99")},
	}

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().
		UpsertTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*product.Transaction) (int, error) {
			require.Len(t, txs, 2)
			assert.Equal(t, "Backpack", txs[0].Title)
			assert.True(t, txs[0].Sold)

			return 1, nil
		})
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.Import(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Updated)

	_, err = svc.Statistics(context.Background(), 3)
	require.NoError(t, err)
}

func expectImport(repo *product.MockRepository, itx *product.MockImportTx) {
	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().UpsertTransactions(gomock.Any(), gomock.Any()).Return(1, nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)
}

func TestService_Statistics_ImportDuringRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)
	svc := newService(repo)

	before := &product.Statistics{TotalSoldItems: 1}
	after := &product.Statistics{TotalSoldItems: 2}

	expectImport(repo, itx)

	gomock.InOrder(
		repo.EXPECT().
			MonthStatistics(gomock.Any(), 3).
			DoAndReturn(func(ctx context.Context, _ int) (*product.Statistics, error) {
				// A seed commits while this read is in flight.
				_, err := svc.Import(ctx, []product.CreateParams{{SourceRef: "1", Title: "Backpack"}})
				require.NoError(t, err)

				return before, nil
			}),
		repo.EXPECT().MonthStatistics(gomock.Any(), 3).Return(after, nil).Times(1),
	)

	got, err := svc.Statistics(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalSoldItems)

	got, err = svc.Statistics(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalSoldItems)

	// The fresh result is cached.
	got, err = svc.Statistics(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalSoldItems)
}

func TestService_PriceHistogram_ImportDuringRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)
	svc := newService(repo)

	expectImport(repo, itx)

	gomock.InOrder(
		repo.EXPECT().
			PriceBucketCounts(gomock.Any(), 5).
			DoAndReturn(func(ctx context.Context, _ int) (map[int]int64, error) {
				_, err := svc.Import(ctx, []product.CreateParams{{SourceRef: "1", Title: "Backpack"}})
				require.NoError(t, err)

				return map[int]int64{0: 1}, nil
			}),
		repo.EXPECT().PriceBucketCounts(gomock.Any(), 5).Return(map[int]int64{0: 4}, nil).Times(1),
	)

	got, err := svc.PriceHistogram(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got[0].Count)

	got, err = svc.PriceHistogram(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got[0].Count)
}

func TestService_Import_UpsertError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().UpsertTransactions(gomock.Any(), gomock.Any()).Return(0, errors.New("constraint"))
	itx.EXPECT().Rollback().Return(nil)

	_, err := newService(repo).Import(context.Background(), []product.CreateParams{{SourceRef: "1"}})
	assert.Error(t, err)
}

func TestService_Import_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	result, err := newService(product.NewMockRepository(ctrl)).Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)
}
