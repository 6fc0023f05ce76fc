package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

func TestBuildListWhere(t *testing.T) {
	type testCase struct {
		name      string
		filter    product.ListFilter
		wantWhere string
		wantArgs  []any
	}

	tests := []testCase{
		{
			name:      "MonthOnly",
			filter:    product.ListFilter{Month: 3},
			wantWhere: ` WHERE ` + monthClause,
			wantArgs:  []any{3},
		},
		{
			name:      "BlankSearch",
			filter:    product.ListFilter{Month: 3, Search: "   "},
			wantWhere: ` WHERE ` + monthClause,
			wantArgs:  []any{3},
		},
		{
			name:      "TextSearch",
			filter:    product.ListFilter{Month: 5, Search: "50%_off"},
			wantWhere: ` WHERE ` + monthClause + ` AND (t.title ILIKE $2 OR t.description ILIKE $2)`,
			wantArgs:  []any{5, `%50\%\_off%`},
		},
		{
			name:      "NumericSearch",
			filter:    product.ListFilter{Month: 1, Search: "109.95"},
			wantWhere: ` WHERE ` + monthClause + ` AND (t.title ILIKE $2 OR t.description ILIKE $2 OR t.price = $3)`,
			wantArgs:  []any{1, "%109.95%", decimal.RequireFromString("109.95")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildListWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
