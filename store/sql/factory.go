package sqlstore

import (
	"fmt"

	"github.com/goliatone/go-chpp/core"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
)

// RepositoryFactory wires every SQL-backed store off one bun handle.
type RepositoryFactory struct {
	db *bun.DB

	generationStore *GenerationStore
	teamStore       *TeamStore
	worldStore      *WorldStore
	playerStore     *PlayerStore
	secretStore     *SecretStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) error {
	if f == nil {
		return fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return err
		}
		f.db = db
	}
	if f.generationStore != nil {
		return nil
	}
	return f.initStores()
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) GenerationStore() core.GenerationStore {
	if f == nil {
		return nil
	}
	return f.generationStore
}

func (f *RepositoryFactory) TeamStore() core.TeamStore {
	if f == nil {
		return nil
	}
	return f.teamStore
}

func (f *RepositoryFactory) WorldStore() core.WorldStore {
	if f == nil {
		return nil
	}
	return f.worldStore
}

func (f *RepositoryFactory) PlayerStore() core.PlayerStore {
	if f == nil {
		return nil
	}
	return f.playerStore
}

func (f *RepositoryFactory) SecretStore() core.SecretStore {
	if f == nil {
		return nil
	}
	return f.secretStore
}

func (f *RepositoryFactory) initStores() error {
	generationStore, err := NewGenerationStore(f.db)
	if err != nil {
		return err
	}
	f.generationStore = generationStore
	teamStore, err := NewTeamStore(f.db)
	if err != nil {
		return err
	}
	f.teamStore = teamStore
	worldStore, err := NewWorldStore(f.db)
	if err != nil {
		return err
	}
	f.worldStore = worldStore
	playerStore, err := NewPlayerStore(f.db)
	if err != nil {
		return err
	}
	f.playerStore = playerStore
	secretStore, err := NewSecretStore(f.db)
	if err != nil {
		return err
	}
	f.secretStore = secretStore
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
