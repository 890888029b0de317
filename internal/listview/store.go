package listview

import (
	"strings"
	"sync"
)

// KeyEvent is a keyboard event relevant to the list screen.
type KeyEvent struct {
	Key  string
	Ctrl bool
	Meta bool
}

// Store holds the list-screen state. All methods are safe for
// concurrent use; the filter strategy publishes back into the store.
type Store struct {
	mu       sync.Mutex
	strategy FilterStrategy

	all        []Record
	visible    []Record
	filter     Filter
	selected   map[string]struct{}
	searchOpen bool
}

// NewStore builds a store with the given strategy; nil means local
// filtering.
func NewStore(strategy FilterStrategy) *Store {
	if strategy == nil {
		strategy = LocalFilter{}
	}
	return &Store{
		strategy: strategy,
		selected: make(map[string]struct{}),
	}
}

// SetRecords replaces the full collection after a fetch. The visible
// set starts as the whole collection and the selection is cleared.
func (s *Store) SetRecords(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append([]Record(nil), records...)
	s.visible = append([]Record(nil), records...)
	s.selected = make(map[string]struct{})
}

// All returns a copy of the full collection.
func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.all...)
}

// Visible returns a copy of the post-filter view.
func (s *Store) Visible() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.visible...)
}

// Filter returns the active filter parameters.
func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter recomputes the visible set for f. An empty filter resets
// the view to the full collection without involving the strategy, so
// clearing the panel never costs a round-trip.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	if f.Empty() {
		s.visible = append([]Record(nil), s.all...)
		s.mu.Unlock()
		// A round-trip scheduled by the previous filter must not
		// clobber the reset view.
		s.strategy.Cancel()
		return
	}
	snapshot := append([]Record(nil), s.all...)
	s.mu.Unlock()

	s.strategy.Apply(f, snapshot, s.publishVisible)
}

// ResetFilter clears every predicate and shows the full collection.
func (s *Store) ResetFilter() {
	s.SetFilter(Filter{})
}

func (s *Store) publishVisible(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = append([]Record(nil), records...)
}

// ToggleSelect flips one record in or out of the selection.
func (s *Store) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// ToggleSelectAllVisible selects every visible record, or clears the
// selection when all of them are already selected.
func (s *Store) ToggleSelectAllVisible() {
	s.mu.Lock()
	defer s.mu.Unlock()

	allSelected := len(s.visible) > 0
	for _, r := range s.visible {
		if _, ok := s.selected[r.ID]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		s.selected = make(map[string]struct{})
		return
	}
	for _, r := range s.visible {
		s.selected[r.ID] = struct{}{}
	}
}

// ClearSelection drops every selected id.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// SelectedIDs returns the selected ids in visible order.
func (s *Store) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.selected))
	for _, r := range s.visible {
		if _, ok := s.selected[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	// Selected records filtered out of view still belong to the set.
	for id := range s.selected {
		if !containsID(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ApplyBulkDelete removes the deleted ids from both the full and the
// visible collections and clears the selection, matching a successful
// bulk-delete response.
func (s *Store) ApplyBulkDelete(ids []string) {
	deleted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		deleted[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = dropIDs(s.all, deleted)
	s.visible = dropIDs(s.visible, deleted)
	s.selected = make(map[string]struct{})
}

// HandleKey processes the list-screen shortcuts: Ctrl/Cmd+F opens the
// search panel, Escape closes it. It reports whether the event was
// consumed.
func (s *Store) HandleKey(ev KeyEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if (ev.Ctrl || ev.Meta) && strings.ToLower(ev.Key) == "f" {
		s.searchOpen = true
		return true
	}
	if ev.Key == "Escape" && s.searchOpen {
		s.searchOpen = false
		return true
	}
	return false
}

// SearchOpen reports whether the search panel is open.
func (s *Store) SearchOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchOpen
}

func dropIDs(records []Record, deleted map[string]struct{}) []Record {
	out := records[:0]
	for _, r := range records {
		if _, ok := deleted[r.ID]; !ok {
			out = append(out, r)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
