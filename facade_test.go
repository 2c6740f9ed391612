package chpp

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-chpp/core"
	chppsync "github.com/goliatone/go-chpp/sync"
)

type noopGenerationStore struct{}

func (noopGenerationStore) Create(context.Context, core.Generation) error { return nil }
func (noopGenerationStore) Complete(context.Context, string, core.GenerationStatus) error {
	return nil
}
func (noopGenerationStore) LatestCompleted(context.Context) (core.Generation, error) {
	return core.Generation{}, core.ErrGenerationNotFound
}

type noopTeamStore struct{}

func (noopTeamStore) SaveTeamDetails(context.Context, string, core.TeamDetails) error { return nil }

type readableTeamStore struct {
	noopTeamStore
}

func (readableTeamStore) ListTeamSummaries(context.Context, string) ([]core.TeamSummary, error) {
	return nil, nil
}

func (readableTeamStore) GetTeam(context.Context, string, int64) (core.Team, error) {
	return core.Team{}, core.ErrTeamNotFound
}

type noopWorldStore struct{}

func (noopWorldStore) SaveWorldDetails(context.Context, string, core.WorldDetails) error { return nil }

type noopPlayerStore struct{}

func (noopPlayerStore) SavePlayers(context.Context, string, int64, []core.Player) error { return nil }

type readablePlayerStore struct {
	noopPlayerStore
}

func (readablePlayerStore) ListPlayersForTeam(context.Context, string, int64) ([]core.Player, error) {
	return nil, nil
}

func testStores() chppsync.Stores {
	return chppsync.Stores{
		Generations: noopGenerationStore{},
		Teams:       noopTeamStore{},
		Worlds:      noopWorldStore{},
		Players:     noopPlayerStore{},
	}
}

func TestNew_WiresServiceAndCommands(t *testing.T) {
	consumer := core.ConsumerCredentials{Key: "ck", Secret: "cs"}

	service, err := New(consumer, WithStores(testStores()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if service.Client() == nil {
		t.Fatalf("expected wired client")
	}
	if service.Handshake() == nil {
		t.Fatalf("expected wired handshake")
	}
	if service.Orchestrator() == nil {
		t.Fatalf("expected wired orchestrator")
	}
	if service.SecretStore() == nil {
		t.Fatalf("expected default secret store")
	}

	commands := service.Commands()
	if commands.StartSync == nil || commands.BeginHandshake == nil || commands.CompleteHandshake == nil {
		t.Fatalf("expected command handlers to be wired")
	}

	queries := service.Queries()
	if queries.LatestGeneration == nil {
		t.Fatalf("expected latest generation query to be wired")
	}
	if queries.ListTeams != nil || queries.GetTeam != nil || queries.ListPlayers != nil {
		t.Fatalf("expected read queries to be skipped for write-only stores")
	}
}

func TestNew_WiresReadQueriesForReadableStores(t *testing.T) {
	consumer := core.ConsumerCredentials{Key: "ck", Secret: "cs"}
	stores := testStores()
	stores.Teams = readableTeamStore{}
	stores.Players = readablePlayerStore{}

	service, err := New(consumer, WithStores(stores))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	queries := service.Queries()
	if queries.ListTeams == nil || queries.GetTeam == nil || queries.ListPlayers == nil {
		t.Fatalf("expected read queries to be wired")
	}
}

func TestNew_RequiresConsumerCredentials(t *testing.T) {
	if _, err := New(core.ConsumerCredentials{}, WithStores(testStores())); err == nil {
		t.Fatalf("expected consumer credential validation error")
	}
}

func TestNew_RequiresStores(t *testing.T) {
	consumer := core.ConsumerCredentials{Key: "ck", Secret: "cs"}
	if _, err := New(consumer); err == nil {
		t.Fatalf("expected missing stores error")
	}

	partial := chppsync.Stores{Generations: noopGenerationStore{}}
	if _, err := New(consumer, WithStores(partial)); err == nil {
		t.Fatalf("expected partial stores error")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	consumer := core.ConsumerCredentials{Key: "ck", Secret: "cs"}
	cfg := core.DefaultConfig()
	cfg.Retry.InitialBackoff = 10 * time.Second
	cfg.Retry.MaxBackoff = 2 * time.Second
	if _, err := New(consumer, WithStores(testStores()), WithConfig(cfg)); err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestNew_LoadsConfigThroughProvider(t *testing.T) {
	consumer := core.ConsumerCredentials{Key: "ck", Secret: "cs"}
	provider := core.NewCfgxConfigProvider(core.NewStaticRawConfigLoader(map[string]any{
		"user_agent": "loaded-agent/2.0",
		"retry": map[string]any{
			"max_retries": 7,
		},
	}))

	service, err := New(consumer, WithStores(testStores()), WithConfigProvider(provider))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cfg := service.Config()
	if cfg.UserAgent != "loaded-agent/2.0" {
		t.Fatalf("expected loaded user agent, got %q", cfg.UserAgent)
	}
	if cfg.Retry.MaxRetries != 7 {
		t.Fatalf("expected loaded max retries, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Endpoints.BaseURL != "https://chpp.hattrick.org" {
		t.Fatalf("expected default base url to survive, got %q", cfg.Endpoints.BaseURL)
	}
}

func TestNew_RuntimeConfigWinsOverProvider(t *testing.T) {
	consumer := core.ConsumerCredentials{Key: "ck", Secret: "cs"}
	provider := core.NewCfgxConfigProvider(core.NewStaticRawConfigLoader(map[string]any{
		"user_agent": "loaded-agent/2.0",
	}))
	runtime := core.Config{UserAgent: "runtime-agent/3.0"}

	service, err := New(consumer, WithStores(testStores()),
		WithConfigProvider(provider), WithConfig(runtime))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if got := service.Config().UserAgent; got != "runtime-agent/3.0" {
		t.Fatalf("expected runtime override to win, got %q", got)
	}
}

func TestNew_UsesProvidedSecretStore(t *testing.T) {
	consumer := core.ConsumerCredentials{Key: "ck", Secret: "cs"}
	secrets := chppsync.NewMemorySecretStore()
	if err := secrets.Set(context.Background(), core.SecretKeyAccessToken, "at"); err != nil {
		t.Fatalf("seed secret store: %v", err)
	}

	service, err := New(consumer, WithStores(testStores()), WithSecretStore(secrets))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	value, err := service.SecretStore().Get(context.Background(), core.SecretKeyAccessToken)
	if err != nil {
		t.Fatalf("read seeded secret: %v", err)
	}
	if value != "at" {
		t.Fatalf("expected seeded secret store to be used, got %q", value)
	}
}
