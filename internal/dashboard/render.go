package dashboard

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Palette colors histogram bars by position.
var Palette = [6]string{"#8884d8", "#82ca9d", "#ffc658", "#ff7300", "#0088FE", "#00C49F"}

func BarColor(i int) string {
	return Palette[i%len(Palette)]
}

const (
	BadgePositive = "badge-positive"
	BadgeNegative = "badge-negative"
)

type Badge struct {
	Text  string
	Class string
}

func SoldBadge(sold bool) Badge {
	if sold {
		return Badge{Text: "Yes", Class: BadgePositive}
	}

	return Badge{Text: "No", Class: BadgeNegative}
}

// FormatPrice renders a price with two decimals, rounding half away from zero.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

type MonthOption struct {
	Value    int
	Label    string
	Selected bool
}

type Card struct {
	Title string
	Value string
}

type Row struct {
	ID          string
	Title       string
	Description string
	Price       string
	Category    string
	Image       string
	Sold        Badge
	Date        string
	Shaded      bool // every other row, starting with the first
}

type Pager struct {
	Page         int
	TotalPages   int
	Prev         int
	Next         int
	PrevDisabled bool
	NextDisabled bool
}

type Bar struct {
	Range   string
	Count   int64
	Color   string
	Percent int // of the tallest bar
}

// View is the fully formatted dashboard, ready for any presenter.
type View struct {
	Month      int
	MonthLabel string
	Months     []MonthOption
	Search     string
	Cards      []Card
	Rows       []Row
	Pager      Pager
	Bars       []Bar
}

// Render formats state and data for display. It has no side effects.
func Render(s State, d Data, loc Locale) View {
	v := View{
		Month:      s.Month,
		MonthLabel: MonthLabel(s.Month),
		Months:     make([]MonthOption, len(Months)),
		Search:     s.Search,
		Cards:      renderCards(d.Statistics),
		Rows:       make([]Row, len(d.Transactions)),
		Pager: Pager{
			Page:         s.Page,
			TotalPages:   s.TotalPages,
			Prev:         max(s.Page-1, 1),
			Next:         s.Page + 1,
			PrevDisabled: !s.CanPrev(),
			NextDisabled: !s.CanNext(),
		},
		Bars: renderBars(d.Histogram),
	}

	for i, label := range Months {
		v.Months[i] = MonthOption{Value: i + 1, Label: label, Selected: i+1 == s.Month}
	}

	for i, tx := range d.Transactions {
		v.Rows[i] = Row{
			ID:          tx.ID,
			Title:       tx.Title,
			Description: tx.Description,
			Price:       FormatPrice(tx.Price),
			Category:    tx.Category,
			Image:       tx.Image,
			Sold:        SoldBadge(tx.Sold),
			Date:        loc.FormatDate(tx.DateOfSale),
			Shaded:      i%2 == 0,
		}
	}

	return v
}

func renderCards(st *Statistics) []Card {
	var s Statistics
	if st != nil {
		s = *st
	}

	return []Card{
		{Title: "Total Sale Amount", Value: s.TotalSaleAmount.Round(2).String()},
		{Title: "Total Sold Items", Value: strconv.FormatInt(s.TotalSoldItems, 10)},
		{Title: "Total Not Sold Items", Value: strconv.FormatInt(s.TotalNotSoldItems, 10)},
	}
}

func renderBars(buckets []Bucket) []Bar {
	var peak int64
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}

	bars := make([]Bar, len(buckets))
	for i, b := range buckets {
		bars[i] = Bar{Range: b.Range, Count: b.Count, Color: BarColor(i)}
		if peak > 0 {
			bars[i].Percent = int(max(b.Count, 0) * 100 / peak)
		}
	}

	return bars
}
