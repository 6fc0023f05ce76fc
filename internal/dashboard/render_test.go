package dashboard_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
)

func TestFormatPrice(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}

	tests := []testCase{
		{in: "49.995", want: "$50.00"},
		{in: "10", want: "$10.00"},
		{in: "0", want: "$0.00"},
		{in: "109.95", want: "$109.95"},
		{in: "22.3", want: "$22.30"},
		{in: "0.004", want: "$0.00"},
		{in: "0.005", want: "$0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.FormatPrice(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestSoldBadge(t *testing.T) {
	assert.Equal(t, dashboard.Badge{Text: "Yes", Class: dashboard.BadgePositive}, dashboard.SoldBadge(true))
	assert.Equal(t, dashboard.Badge{Text: "No", Class: dashboard.BadgeNegative}, dashboard.SoldBadge(false))
}

func TestRender_AbsentStatistics(t *testing.T) {
	v := dashboard.Render(dashboard.NewState(3), dashboard.Data{}, dashboard.MatchLocale(time.UTC))

	require.Len(t, v.Cards, 3)
	assert.Equal(t, "Total Sale Amount", v.Cards[0].Title)
	assert.Equal(t, "Total Sold Items", v.Cards[1].Title)
	assert.Equal(t, "Total Not Sold Items", v.Cards[2].Title)

	for _, c := range v.Cards {
		assert.Equal(t, "0", c.Value)
	}

	assert.Empty(t, v.Rows)
	assert.Empty(t, v.Bars)
	assert.True(t, v.Pager.PrevDisabled)
	assert.True(t, v.Pager.NextDisabled)
}

func TestRender_Statistics(t *testing.T) {
	data := dashboard.Data{Statistics: &dashboard.Statistics{
		TotalSaleAmount:   decimal.RequireFromString("1234.567"),
		TotalSoldItems:    7,
		TotalNotSoldItems: 3,
	}}

	v := dashboard.Render(dashboard.NewState(3), data, dashboard.MatchLocale(time.UTC))

	assert.Equal(t, "1234.57", v.Cards[0].Value)
	assert.Equal(t, "7", v.Cards[1].Value)
	assert.Equal(t, "3", v.Cards[2].Value)
}

func TestRender_Rows(t *testing.T) {
	sale := time.Date(2022, 3, 27, 20, 29, 54, 0, time.UTC)

	data := dashboard.Data{
		Transactions: []dashboard.Transaction{
			{ID: "1", Title: "Backpack", Price: decimal.RequireFromString("49.995"), Category: "men's clothing", Sold: true, DateOfSale: sale},
			{ID: "2", Title: "Jacket", Price: decimal.NewFromInt(10), Category: "men's clothing", Sold: false, DateOfSale: sale},
		},
		TotalPages: 2,
	}

	s := dashboard.State{Month: 3, Page: 1, TotalPages: 2}
	v := dashboard.Render(s, data, dashboard.LocaleFromPOSIX("en_US.UTF-8", time.UTC))

	require.Len(t, v.Rows, 2)
	assert.Equal(t, "$50.00", v.Rows[0].Price)
	assert.Equal(t, "$10.00", v.Rows[1].Price)
	assert.Equal(t, dashboard.SoldBadge(true), v.Rows[0].Sold)
	assert.Equal(t, dashboard.SoldBadge(false), v.Rows[1].Sold)
	assert.Equal(t, "3/27/2022", v.Rows[0].Date)
	assert.True(t, v.Rows[0].Shaded)
	assert.False(t, v.Rows[1].Shaded)

	assert.True(t, v.Pager.PrevDisabled)
	assert.False(t, v.Pager.NextDisabled)
	assert.Equal(t, 2, v.Pager.Next)
}

func TestRender_Months(t *testing.T) {
	v := dashboard.Render(dashboard.NewState(7), dashboard.Data{}, dashboard.Locale{})

	require.Len(t, v.Months, 12)
	assert.Equal(t, "July", v.MonthLabel)

	for i, m := range v.Months {
		assert.Equal(t, i+1, m.Value)
		assert.Equal(t, dashboard.Months[i], m.Label)
		assert.Equal(t, i == 6, m.Selected)
	}
}

func TestRender_Bars(t *testing.T) {
	var buckets []dashboard.Bucket
	for i, r := range []string{"901-above", "0-100", "101-200", "201-300", "301-400", "401-500", "501-600", "601-700"} {
		buckets = append(buckets, dashboard.Bucket{Range: r, Count: int64(i)})
	}

	v := dashboard.Render(dashboard.NewState(3), dashboard.Data{Histogram: buckets}, dashboard.Locale{})

	require.Len(t, v.Bars, len(buckets))

	for i, bar := range v.Bars {
		assert.Equal(t, buckets[i].Range, bar.Range, "server order is kept")
		assert.Equal(t, buckets[i].Count, bar.Count)
		assert.Equal(t, dashboard.Palette[i%6], bar.Color)
	}

	assert.Equal(t, "#8884d8", v.Bars[6].Color)
	assert.Equal(t, 0, v.Bars[0].Percent)
	assert.Equal(t, 100, v.Bars[7].Percent)
}
