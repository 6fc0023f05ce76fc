package csvfeed_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/salesdash/internal/importer/csvfeed"
)

func TestParser_Comma(t *testing.T) {
	csv := `id,title,price,description,category,image,sold,dateOfSale
1,"Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops",109.95,Your perfect pack,men's clothing,,false,2021-11-27T20:29:54+05:30
2,Mens Casual Premium Slim Fit T-Shirts,22.3,Slim-fitting style,men's clothing,,true,2022-03-27T20:29:54+05:30
`

	txs, err := csvfeed.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "1", txs[0].SourceRef)
	assert.Equal(t, "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops", txs[0].Title)
	assert.Equal(t, "109.95", txs[0].Price.String())
	assert.False(t, txs[0].Sold)

	assert.Equal(t, "22.3", txs[1].Price.String())
	assert.True(t, txs[1].Sold)
	assert.Equal(t, time.March, txs[1].DateOfSale.UTC().Month())
}

func TestParser_SemicolonWithPreamble(t *testing.T) {
	csv := `Export;Store A
Generated;2022-04-01

Date of sale;Sold;Price;Title;ID
2022-03-01;yes;1.234,50;Laptop;L-1

2022-03-02;no;10,00;Cable;L-2
`

	txs, err := csvfeed.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "L-1", txs[0].SourceRef)
	assert.Equal(t, "1234.5", txs[0].Price.String())
	assert.True(t, txs[0].Sold)
	assert.Equal(t, "L-2", txs[1].SourceRef)
	assert.Equal(t, "10", txs[1].Price.String())
}

func TestParser_Latin1(t *testing.T) {
	utf8CSV := "id;title;price;date\n1;Café crème;3,50;2022-03-01\n"

	latin1, err := charmap.Windows1252.NewEncoder().String(utf8CSV)
	require.NoError(t, err)

	txs, err := csvfeed.NewParser().Parse(bytes.NewReader([]byte(latin1)))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Café crème", txs[0].Title)
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantMsg string
	}

	tests := []testCase{
		{
			name:    "NoHeader",
			input:   "a,b,c\n1,2,3\n",
			wantMsg: "no header row",
		},
		{
			name:    "BadRow",
			input:   "id,title,price,dateOfSale\n1,Shirt,9.99,2022-01-01\n2,Hat,cheap,2022-01-02\n",
			wantMsg: "row 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvfeed.NewParser().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
