package listview

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay before a remote filter round-trip.
const DefaultDebounce = 500 * time.Millisecond

// FilterStrategy decides how a non-empty filter produces the visible
// set. Exactly one strategy is configured per list; callers pick local
// or remote, never both.
type FilterStrategy interface {
	// Apply receives the filter, a snapshot of the full collection
	// and a publish callback for the resulting visible set. Apply may
	// publish asynchronously.
	Apply(f Filter, all []Record, publish func([]Record))

	// Cancel drops any pending asynchronous publish so a cleared
	// filter is never overwritten by an earlier round-trip.
	Cancel()
}

// LocalFilter scans the in-memory snapshot synchronously, with no
// network round-trip.
type LocalFilter struct{}

func (LocalFilter) Apply(f Filter, all []Record, publish func([]Record)) {
	publish(filterRecords(all, f))
}

func (LocalFilter) Cancel() {}

// RemoteFilter debounces filter changes and then delegates to a fetch
// function, typically the server-backed search endpoint. A newer
// filter cancels the pending round-trip.
type RemoteFilter struct {
	Fetch func(Filter) ([]Record, error)
	Delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func (r *RemoteFilter) Apply(f Filter, _ []Record, publish func([]Record)) {
	delay := r.Delay
	if delay <= 0 {
		delay = DefaultDebounce
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(delay, func() {
		records, err := r.Fetch(f)
		if err != nil {
			// Keep the current view; the caller surfaces fetch
			// errors through its own channel.
			return
		}
		publish(records)
	})
}

// Cancel stops the pending debounce timer, if any.
func (r *RemoteFilter) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
