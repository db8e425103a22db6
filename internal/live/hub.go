// Package live delivers fresh query snapshots to subscribers whenever a write
// commits against a table the query reads from.
package live

import "sync"

// Table names a store table that queries depend on.
type Table string

const (
	Tabs              Table = "tabs"
	MenuItems         Table = "menu_items"
	OrderLines        Table = "order_lines"
	DebtRecords       Table = "debt_records"
	Categories        Table = "categories"
	SuggestionPresets Table = "suggestion_presets"
)

// Hub fans change notifications out to watchers keyed by table.
type Hub struct {
	mu       sync.Mutex
	watchers map[uint64]*watcher
	next     uint64
}

type watcher struct {
	tables map[Table]struct{}
	// notify has capacity one so a burst of changes collapses into a single wake-up.
	notify chan struct{}
}

func NewHub() *Hub {
	return &Hub{watchers: make(map[uint64]*watcher)}
}

// Publish wakes every watcher that depends on one of tables. It never blocks.
func (h *Hub) Publish(tables ...Table) {
	if len(tables) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range h.watchers {
		if !w.dependsOn(tables) {
			continue
		}
		select {
		case w.notify <- struct{}{}:
		default:
		}
	}
}

// Watchers returns the number of registered watchers.
func (h *Hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

func (h *Hub) register(tables []Table) (uint64, *watcher) {
	w := &watcher{tables: make(map[Table]struct{}, len(tables)), notify: make(chan struct{}, 1)}
	for _, t := range tables {
		w.tables[t] = struct{}{}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.watchers[h.next] = w
	return h.next, w
}

func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	delete(h.watchers, id)
	h.mu.Unlock()
}

func (w *watcher) dependsOn(tables []Table) bool {
	for _, t := range tables {
		if _, ok := w.tables[t]; ok {
			return true
		}
	}
	return false
}
