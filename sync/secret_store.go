package sync

import (
	"context"
	"strings"
	gosync "sync"

	"github.com/goliatone/go-chpp/core"
)

// MemorySecretStore keeps secrets in process memory. It backs tests and
// setups without a durable secret backend.
type MemorySecretStore struct {
	mu    gosync.RWMutex
	items map[string]string
}

func NewMemorySecretStore() *MemorySecretStore {
	return &MemorySecretStore{items: map[string]string{}}
}

func (s *MemorySecretStore) Get(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[strings.TrimSpace(name)]
	if !ok {
		return "", core.ErrMissingCredentials
	}
	return value, nil
}

func (s *MemorySecretStore) Set(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[strings.TrimSpace(name)] = value
	return nil
}

func (s *MemorySecretStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, strings.TrimSpace(name))
	return nil
}

// SaveAccessToken stores the credential pair produced by a completed
// handshake into any secret store.
func SaveAccessToken(ctx context.Context, secrets core.SecretStore, token core.AccessToken) error {
	if err := secrets.Set(ctx, core.SecretKeyAccessToken, token.Token); err != nil {
		return err
	}
	return secrets.Set(ctx, core.SecretKeyAccessSecret, token.Secret)
}

var _ core.SecretStore = (*MemorySecretStore)(nil)
