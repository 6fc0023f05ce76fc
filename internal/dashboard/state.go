package dashboard

const (
	DefaultMonth    = 3
	DefaultPageSize = 10
)

// Months are the selectable month labels. Month n is Months[n-1].
var Months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthLabel returns the label for a 1-based month, or "" when out of range.
func MonthLabel(month int) string {
	if month < 1 || month > len(Months) {
		return ""
	}

	return Months[month-1]
}

// State is the user-controlled input of the dashboard. It is a value type;
// transitions go through Apply and never mutate the receiver.
type State struct {
	Month      int
	Search     string
	Page       int
	TotalPages int // as last reported by the server
}

func NewState(month int) State {
	if month < 1 || month > len(Months) {
		month = DefaultMonth
	}

	return State{Month: month, Page: 1}
}

// Event is a user intent or server report that may move the state.
type Event interface {
	apply(s State) (State, bool)
}

type SelectMonth struct{ Month int }

type ChangeSearch struct{ Search string }

type PrevPage struct{}

type NextPage struct{}

// PagesReported records the page count from a transactions response.
type PagesReported struct{ TotalPages int }

// Apply returns the next state and whether the fetch parameters changed.
func (s State) Apply(e Event) (State, bool) {
	return e.apply(s)
}

func (e SelectMonth) apply(s State) (State, bool) {
	if e.Month < 1 || e.Month > len(Months) {
		return s, false
	}

	s.Month = e.Month
	s.Page = 1

	// An explicit selection always refetches, even for the current month.
	return s, true
}

func (e ChangeSearch) apply(s State) (State, bool) {
	if e.Search == s.Search {
		return s, false
	}

	s.Search = e.Search
	s.Page = 1

	return s, true
}

func (PrevPage) apply(s State) (State, bool) {
	if !s.CanPrev() {
		return s, false
	}

	s.Page--

	return s, true
}

func (NextPage) apply(s State) (State, bool) {
	if !s.CanNext() {
		return s, false
	}

	s.Page++

	return s, true
}

func (e PagesReported) apply(s State) (State, bool) {
	s.TotalPages = max(e.TotalPages, 0)

	// Keep the current page reachable when the result set shrank underneath it.
	// An empty result has no pages; the page rests at 1.
	last := max(s.TotalPages, 1)
	if s.Page > last {
		s.Page = last
		return s, true
	}

	return s, false
}

func (s State) CanPrev() bool {
	return s.Page > 1
}

func (s State) CanNext() bool {
	return s.Page < s.TotalPages
}

// Query describes one transactions page request.
type Query struct {
	Search  string
	Month   int
	Page    int
	PerPage int
}

// Requests are the three fetches a state calls for.
type Requests struct {
	Transactions Query
	Statistics   int
	Histogram    int
}

func (s State) Requests(perPage int) Requests {
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	return Requests{
		Transactions: Query{Search: s.Search, Month: s.Month, Page: s.Page, PerPage: perPage},
		Statistics:   s.Month,
		Histogram:    s.Month,
	}
}
