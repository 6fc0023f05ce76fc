package dashboard

import (
	"context"
	"sync"
)

// Kind identifies one of the three independent fetches.
type Kind int

const (
	KindTransactions Kind = iota
	KindStatistics
	KindHistogram
	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindTransactions:
		return "transactions"
	case KindStatistics:
		return "statistics"
	case KindHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Ticket identifies one issued request.
type Ticket struct {
	Kind Kind
	Gen  uint64
}

// Tracker supersedes requests per kind. Beginning a request cancels the
// previous one of the same kind, and only the latest ticket is current.
type Tracker struct {
	mu     sync.Mutex
	gen    [numKinds]uint64
	cancel [numKinds]context.CancelFunc
}

func (t *Tracker) Begin(parent context.Context, kind Kind) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev := t.cancel[kind]; prev != nil {
		prev()
	}

	t.gen[kind]++
	t.cancel[kind] = cancel

	return ctx, Ticket{Kind: kind, Gen: t.gen[kind]}
}

// Current reports whether tk is still the latest request of its kind.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.gen[tk.Kind] == tk.Gen
}

// Finish releases the context of tk. It returns false for superseded tickets,
// whose results must be dropped.
func (t *Tracker) Finish(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.gen[tk.Kind] != tk.Gen {
		return false
	}

	if cancel := t.cancel[tk.Kind]; cancel != nil {
		cancel()
		t.cancel[tk.Kind] = nil
	}

	return true
}

// Pending counts the kinds with a request in flight.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0

	for _, c := range t.cancel {
		if c != nil {
			n++
		}
	}

	return n
}

// Stop cancels everything in flight and invalidates all outstanding tickets.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k, c := range t.cancel {
		if c != nil {
			c()
			t.cancel[k] = nil
		}

		t.gen[k]++
	}
}
