package storage

import (
	"context"
	"sync"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// MemoryStore keeps the credential record in process memory.
// Records do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	pair *interfaces.AdminCredentialPair
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pair == nil {
		return nil, interfaces.ErrCredentialsNotFound
	}
	pair := *s.pair
	return &pair, nil
}

func (s *MemoryStore) Save(ctx context.Context, pair *interfaces.AdminCredentialPair) error {
	stored := *pair

	s.mu.Lock()
	s.pair = &stored
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Available(ctx context.Context) bool {
	return true
}

func (s *MemoryStore) Name() string {
	return "memory"
}

func (s *MemoryStore) LocationURI() string {
	return "mem://"
}
