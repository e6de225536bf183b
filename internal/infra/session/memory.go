package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process. Used by tests and local tooling.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Data
	Recovery map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]Data{},
		Recovery: map[string]string{},
	}
}

func (s *MemoryStore) Create(_ context.Context, data Data) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.sessions[id] = data
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.sessions {
		if d.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *MemoryStore) SaveRecoveryToken(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.Recovery[token] = email
	return token, nil
}

var (
	_ Store         = (*MemoryStore)(nil)
	_ RecoveryStore = (*MemoryStore)(nil)
)
