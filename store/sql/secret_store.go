package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-chpp/core"
	"github.com/uptrace/bun"
)

// SecretStore keeps named secrets in the database so the access credential
// pair survives restarts.
type SecretStore struct {
	db *bun.DB
}

func NewSecretStore(db *bun.DB) (*SecretStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &SecretStore{db: db}, nil
}

func (s *SecretStore) Get(ctx context.Context, name string) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("sqlstore: secret store is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("sqlstore: secret name is required")
	}
	record := &secretRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%w: %q", core.ErrMissingCredentials, name)
		}
		return "", core.NewStorageError(err, "load secret")
	}
	return record.Value, nil
}

func (s *SecretStore) Set(ctx context.Context, name, value string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: secret store is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("sqlstore: secret name is required")
	}
	record := &secretRecord{
		Name:      name,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return core.NewStorageError(err, "store secret")
	}
	return nil
}

func (s *SecretStore) Delete(ctx context.Context, name string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: secret store is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("sqlstore: secret name is required")
	}
	if _, err := s.db.NewDelete().
		Model((*secretRecord)(nil)).
		Where("?TableAlias.name = ?", name).
		Exec(ctx); err != nil {
		return core.NewStorageError(err, "delete secret")
	}
	return nil
}
