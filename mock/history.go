package mock

import (
	"sync"

	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var _ evalconsole.HistoryStore = (*History)(nil)

// History is an in-memory evalconsole.HistoryStore. AppendFn, when set,
// replaces the default of recording the entry.
type History struct {
	mu       sync.Mutex
	Entries  []evalconsole.HistoryEntry
	AppendFn func(entry evalconsole.HistoryEntry) error
}

func (h *History) Append(entry evalconsole.HistoryEntry) error {
	if h.AppendFn != nil {
		return h.AppendFn(entry)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Entries = append(h.Entries, entry)
	return nil
}

func (h *History) Load() ([]evalconsole.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]evalconsole.HistoryEntry(nil), h.Entries...), nil
}
