// Package points is the durable per-user point ledger. The engine
// reports score deltas; a Store applies each delta exactly once and
// serves the all-time leaderboard.
package points

import (
	"context"
	"sort"
	"sync"
)

// Entry is one leaderboard row.
type Entry struct {
	UserID string
	Points int64
}

// Store is the ledger contract. Implementations: in-memory, Postgres,
// Redis.
type Store interface {
	// Get returns a user's total points, zero for unknown users.
	Get(ctx context.Context, userID string) (int64, error)

	// Add applies a delta and returns the new total.
	Add(ctx context.Context, userID string, delta int64) (int64, error)

	// Top returns the highest-scoring users, at most n.
	Top(ctx context.Context, n int) ([]Entry, error)
}

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu     sync.Mutex
	totals map[string]int64
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{totals: make(map[string]int64)}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals[userID], nil
}

// Add implements Store.
func (s *MemoryStore) Add(ctx context.Context, userID string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[userID] += delta
	return s.totals[userID], nil
}

// Top implements Store.
func (s *MemoryStore) Top(ctx context.Context, n int) ([]Entry, error) {
	s.mu.Lock()
	entries := make([]Entry, 0, len(s.totals))
	for id, pts := range s.totals {
		entries = append(entries, Entry{UserID: id, Points: pts})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
