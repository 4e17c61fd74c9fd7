package credstore

import (
	"context"
	"sync"

	"github.com/favoriteblog/blog-ui/internal/ports"
)

var _ ports.CredentialStore = (*MemoryStore)(nil)

// MemoryStore holds the credential for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.value != "", nil
}

func (s *MemoryStore) Save(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = credential
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	return nil
}
