package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	snap       Snapshot
	lastAccess time.Time
}

// MemoryStore is an in-process Store. Sessions idle longer than ttl are
// dropped by Sweep; ttl <= 0 keeps them forever.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]*memoryEntry{},
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return Snapshot{}, false, nil
	}
	e.lastAccess = m.now()
	return e.snap, true, nil
}

func (m *MemoryStore) Put(_ context.Context, id string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = &memoryEntry{snap: snap, lastAccess: m.now()}
	return nil
}

func (m *MemoryStore) Invalidate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Sweep drops idle sessions and reports how many were removed.
func (m *MemoryStore) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.entries {
		if now.Sub(e.lastAccess) > m.ttl {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Len is the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
