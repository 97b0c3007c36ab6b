package storage

import (
	"context"
	"fmt"
	"sync"

	"porter-desk-service/internal/ports"
)

// In-memory StateStore used by tests and ephemeral demo runs. FailWrites
// simulates a full or disabled device so callers can exercise the
// storage-unavailable path.
type MemoryStateStore struct {
	mu         sync.Mutex
	slots      map[string]string
	FailWrites bool
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{slots: make(map[string]string)}
}

func (s *MemoryStateStore) Write(ctx context.Context, slot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return fmt.Errorf("memory state store: write slot %q: %w", slot, ports.ErrStorageUnavailable)
	}

	s.slots[slot] = value
	return nil
}

func (s *MemoryStateStore) Read(ctx context.Context, slot string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.slots[slot]
	return value, ok, nil
}

func (s *MemoryStateStore) Clear(ctx context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, slot)
	return nil
}
