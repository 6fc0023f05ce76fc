package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
)

func TestLoad_InitialState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := dashboard.NewMockSource(ctrl)

	page := &dashboard.Page{
		Items:      []dashboard.Transaction{{ID: "1", Title: "Backpack", Price: decimal.NewFromInt(10)}},
		TotalPages: 6,
	}
	stats := &dashboard.Statistics{TotalSoldItems: 3}
	buckets := []dashboard.Bucket{{Range: "0-100", Count: 4}}

	src.EXPECT().
		FetchTransactionsPage(gomock.Any(), dashboard.Query{Search: "", Month: 3, Page: 1, PerPage: 10}).
		Return(page, nil).
		Times(1)
	src.EXPECT().FetchStatistics(gomock.Any(), 3).Return(stats, nil).Times(1)
	src.EXPECT().FetchHistogram(gomock.Any(), 3).Return(buckets, nil).Times(1)

	data := dashboard.Load(context.Background(), src, dashboard.NewState(dashboard.DefaultMonth), dashboard.DefaultPageSize)

	assert.Equal(t, page.Items, data.Transactions)
	assert.Equal(t, 6, data.TotalPages)
	assert.Equal(t, stats, data.Statistics)
	assert.Equal(t, buckets, data.Histogram)
}

func TestLoad_SelectedMonth(t *testing.T) {
	for month := 1; month <= 12; month++ {
		t.Run(dashboard.MonthLabel(month), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := dashboard.NewMockSource(ctrl)

			s, _ := dashboard.State{Month: 3, Page: 2, TotalPages: 4}.Apply(dashboard.SelectMonth{Month: month})

			src.EXPECT().
				FetchTransactionsPage(gomock.Any(), dashboard.Query{Month: month, Page: 1, PerPage: 10}).
				Return(&dashboard.Page{}, nil).
				Times(1)
			src.EXPECT().FetchStatistics(gomock.Any(), month).Return(nil, nil).Times(1)
			src.EXPECT().FetchHistogram(gomock.Any(), month).Return(nil, nil).Times(1)

			dashboard.Load(context.Background(), src, s, dashboard.DefaultPageSize)
		})
	}
}

func TestLoad_FailuresDegrade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := dashboard.NewMockSource(ctrl)
	boom := errors.New("connection refused")

	src.EXPECT().FetchTransactionsPage(gomock.Any(), gomock.Any()).Return(nil, boom)
	src.EXPECT().FetchStatistics(gomock.Any(), gomock.Any()).Return(nil, boom)
	src.EXPECT().FetchHistogram(gomock.Any(), gomock.Any()).Return(nil, boom)

	data := dashboard.Load(context.Background(), src, dashboard.NewState(5), dashboard.DefaultPageSize)
	assert.Equal(t, dashboard.Data{}, data)

	v := dashboard.Render(dashboard.NewState(5), data, dashboard.Locale{})
	for _, c := range v.Cards {
		assert.Equal(t, "0", c.Value)
	}

	assert.Empty(t, v.Rows)
	assert.Empty(t, v.Bars)
}
