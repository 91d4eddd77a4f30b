package usage

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryCounter keeps usage in process memory. counts are lost on restart
// and not shared between instances.
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[Key]int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[Key]int64)}
}

func (m *MemoryCounter) IncrementAndCheck(_ context.Context, key Key, ceiling int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[key]++
	count := m.counts[key]

	return count, ceiling <= 0 || count <= ceiling, nil
}

func (m *MemoryCounter) Snapshot(_ context.Context) ([]Entry, error) {
	m.mu.Lock()
	entries := make([]Entry, 0, len(m.counts))
	for k, v := range m.counts {
		entries = append(entries, Entry{Day: k.Day, CallerID: k.CallerID, Count: v})
	}
	m.mu.Unlock()

	sortEntries(entries)
	return entries, nil
}

// removes buckets of days before the given day and returns how many were removed
func (m *MemoryCounter) Prune(before string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k := range m.counts {
		if k.Day < before {
			delete(m.counts, k)
			removed++
		}
	}

	return removed
}

// newest day first, then by caller
func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Day, a.Day); c != 0 {
			return c
		}

		return cmp.Compare(a.CallerID, b.CallerID)
	})
}
