package statestore

import (
	"context"
	"sync"
)

type MemStateStore struct {
	mu   sync.RWMutex
	data map[string]UserState
}

var _ StateStore = (*MemStateStore)(nil)

func NewMemStateStore() *MemStateStore {
	return &MemStateStore{
		data: make(map[string]UserState),
	}
}

func (s *MemStateStore) Get(ctx context.Context, userID string) (UserState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[userID], nil
}

func (s *MemStateStore) Put(ctx context.Context, userID string, state UserState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = state
	return nil
}

// does not error if no state exists for the user
func (s *MemStateStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}
