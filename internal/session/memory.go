package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps session records in RAM. Sessions are lost on restart,
// which is acceptable for tests and single-node dev setups.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	recs map[string]memoryEntry
}

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &MemoryStore{
		ttl:  ttl,
		recs: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = memoryEntry{rec: rec, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.recs, id)
		return nil, ErrNotFound
	}
	rec := entry.rec
	return &rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, id)
	return nil
}
