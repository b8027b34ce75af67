package activity

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Store for development and tests
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]Activity
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byUser: make(map[uuid.UUID][]Activity)}
}

func (s *MemoryStore) Create(_ context.Context, a *Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUser[a.UserID] = append(s.byUser[a.UserID], *a)
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byUser[userID]
	out := make([]Activity, len(stored))
	for i, a := range stored {
		out[len(stored)-1-i] = a
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
