package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-chpp/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type GenerationStore struct {
	db   *bun.DB
	repo repository.Repository[*generationRecord]
}

func NewGenerationStore(db *bun.DB) (*GenerationStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*generationRecord](db, generationHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid generation repository wiring: %w", err)
		}
	}
	return &GenerationStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *GenerationStore) Create(ctx context.Context, gen core.Generation) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: generation store is not configured")
	}
	if strings.TrimSpace(gen.ID) == "" {
		gen.ID = uuid.NewString()
	}
	if gen.Status == "" {
		gen.Status = core.GenerationStatusInProgress
	}
	startedAt := gen.Timestamp
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	record := &generationRecord{
		ID:        strings.TrimSpace(gen.ID),
		Status:    string(gen.Status),
		StartedAt: startedAt.UTC(),
	}
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return core.NewStorageError(err, "create generation record")
	}
	return nil
}

func (s *GenerationStore) Complete(ctx context.Context, id string, status core.GenerationStatus) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: generation store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("sqlstore: generation id is required")
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record := &generationRecord{}
		err := tx.NewSelect().
			Model(record).
			Where("?TableAlias.id = ?", id).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("%w: id %q", core.ErrGenerationNotFound, id)
			}
			return core.NewStorageError(err, "load generation record")
		}

		gen := record.toDomain()
		now := time.Now().UTC()
		if err := gen.TransitionTo(status, now); err != nil {
			return err
		}

		record.Status = string(gen.Status)
		record.CompletedAt = &now
		record.UpdatedAt = now
		if _, err := tx.NewUpdate().
			Model(record).
			Column("status", "completed_at", "updated_at").
			Where("id = ?", record.ID).
			Exec(ctx); err != nil {
			return core.NewStorageError(err, "complete generation record")
		}
		return nil
	})
}

func (s *GenerationStore) LatestCompleted(ctx context.Context) (core.Generation, error) {
	if s == nil || s.db == nil {
		return core.Generation{}, fmt.Errorf("sqlstore: generation store is not configured")
	}
	record := &generationRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.status = ?", string(core.GenerationStatusCompleted)).
		OrderExpr("?TableAlias.started_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Generation{}, core.ErrGenerationNotFound
		}
		return core.Generation{}, core.NewStorageError(err, "load latest completed generation")
	}
	return record.toDomain(), nil
}
