package session

import (
	"sync"
	"time"
)

var _ CredentialStore = &MemoryStore{}

// MemoryStore keeps the credential in process memory. Useful for tests
// and for deployments that do not want persistence across restarts.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Save(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	} else {
		s.expiresAt = time.Time{}
	}
	return nil
}

func (s *MemoryStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", false
	}

	if !s.expiresAt.IsZero() && s.now().After(s.expiresAt) {
		s.token = ""
		s.expiresAt = time.Time{}
		return "", false
	}

	return s.token, true
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}
