package product

import (
	"github.com/shopspring/decimal"
)

// PriceRanges are the histogram labels in display order. Upper bounds are inclusive.
var PriceRanges = []string{
	"0-100",
	"101-200",
	"201-300",
	"301-400",
	"401-500",
	"501-600",
	"601-700",
	"701-800",
	"801-900",
	"901-above",
}

var hundred = decimal.NewFromInt(100)

// BucketIndex returns the index into PriceRanges for price.
func BucketIndex(price decimal.Decimal) int {
	if price.LessThanOrEqual(hundred) {
		return 0
	}

	idx := int(price.Div(hundred).Ceil().IntPart()) - 1
	if idx >= len(PriceRanges) {
		return len(PriceRanges) - 1
	}

	return idx
}

// histogram expands sparse per-index counts into the full ordered bucket list.
func histogram(counts map[int]int64) []Bucket {
	buckets := make([]Bucket, len(PriceRanges))
	for i, label := range PriceRanges {
		buckets[i] = Bucket{Range: label, Count: counts[i]}
	}

	return buckets
}

func validMonth(month int) bool {
	return month >= 1 && month <= 12
}
