package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and store-less runs.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[Key]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[Key]*Record)}
}

func (m *MemoryStore) Find(_ context.Context, key Key) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) Insert(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := rec.Key()
	if _, ok := m.records[key]; ok {
		return ErrConflict
	}
	m.nextID++
	rec.ID = m.nextID
	m.records[key] = &rec
	return nil
}

func (m *MemoryStore) Update(_ context.Context, key Key, d Delta, lastPlayed string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return ErrNotFound
	}
	if rec.LastPlayed == lastPlayed {
		return ErrAlreadyPlayed
	}
	rec.Score += d.Score
	rec.Attempted += d.Attempted
	rec.Correct += d.Correct
	rec.TotalTimeMs += d.TotalTimeMs
	rec.LastPlayed = lastPlayed
	rec.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) List(_ context.Context, subject Subject, week string, limit int) ([]Record, error) {
	return m.collect(limit, func(r *Record) bool { return r.Subject == subject && r.Week == week }), nil
}

func (m *MemoryStore) ListAll(_ context.Context, limit int) ([]Record, error) {
	return m.collect(limit, func(*Record) bool { return true }), nil
}

func (m *MemoryStore) ListNames(_ context.Context, subject Subject, week string, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for _, r := range m.records {
		if r.Subject == subject && r.Week == week && !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
	}
	sort.Strings(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (m *MemoryStore) collect(limit int, keep func(*Record) bool) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, r := range m.records {
		if keep(r) {
			out = append(out, *r)
		}
	}
	Sort(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
