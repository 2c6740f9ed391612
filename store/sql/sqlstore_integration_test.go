package sqlstore_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/goliatone/go-chpp/core"
	chppmigrations "github.com/goliatone/go-chpp/migrations"
	sqlstore "github.com/goliatone/go-chpp/store/sql"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type testPersistenceConfig struct {
	driver string
	server string
}

func (c testPersistenceConfig) GetDebug() bool {
	return false
}

func (c testPersistenceConfig) GetDriver() string {
	return c.driver
}

func (c testPersistenceConfig) GetServer() string {
	return c.server
}

func (c testPersistenceConfig) GetPingTimeout() time.Duration {
	return time.Second
}

func (c testPersistenceConfig) GetOtelIdentifier() string {
	return "go-chpp-tests"
}

func TestMigrationSmokeApplySQLite(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	var tableName string
	if err := client.DB().NewRaw(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
		"chpp_generations",
	).Scan(context.Background(), &tableName); err != nil {
		t.Fatalf("query sqlite master: %v", err)
	}
	if tableName != "chpp_generations" {
		t.Fatalf("expected chpp_generations table, got %q", tableName)
	}
}

func TestGenerationStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.GenerationStore()

	if _, err := store.LatestCompleted(ctx); !errors.Is(err, core.ErrGenerationNotFound) {
		t.Fatalf("expected not found on empty table, got %v", err)
	}

	first := core.Generation{
		ID:        "gen-first",
		Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Status:    core.GenerationStatusInProgress,
	}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("create first generation: %v", err)
	}

	if _, err := store.LatestCompleted(ctx); !errors.Is(err, core.ErrGenerationNotFound) {
		t.Fatalf("expected not found while run is in progress, got %v", err)
	}

	if err := store.Complete(ctx, "gen-first", core.GenerationStatusCompleted); err != nil {
		t.Fatalf("complete first generation: %v", err)
	}

	latest, err := store.LatestCompleted(ctx)
	if err != nil {
		t.Fatalf("latest completed: %v", err)
	}
	if latest.ID != "gen-first" {
		t.Fatalf("expected latest id gen-first, got %q", latest.ID)
	}
	if latest.Status != core.GenerationStatusCompleted {
		t.Fatalf("expected completed status, got %q", latest.Status)
	}

	if err := store.Complete(ctx, "gen-missing", core.GenerationStatusCompleted); !errors.Is(err, core.ErrGenerationNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}

	second := core.Generation{
		ID:        "gen-second",
		Timestamp: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		Status:    core.GenerationStatusInProgress,
	}
	if err := store.Create(ctx, second); err != nil {
		t.Fatalf("create second generation: %v", err)
	}
	if err := store.Complete(ctx, "gen-second", core.GenerationStatusCompleted); err != nil {
		t.Fatalf("complete second generation: %v", err)
	}

	latest, err = store.LatestCompleted(ctx)
	if err != nil {
		t.Fatalf("latest completed after second run: %v", err)
	}
	if latest.ID != "gen-second" {
		t.Fatalf("expected latest id gen-second, got %q", latest.ID)
	}
}

func TestTeamAndWorldStores_PersistReferenceData(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}

	gen := core.Generation{ID: "gen-ref", Status: core.GenerationStatusInProgress}
	if err := factory.GenerationStore().Create(ctx, gen); err != nil {
		t.Fatalf("create generation: %v", err)
	}

	primary := true
	shortName := "HT"
	details := core.TeamDetails{
		User: core.User{
			ID:                200,
			Name:              "Manager",
			LoginName:         "manager",
			SupporterTier:     "platinum",
			HasManagerLicense: true,
			Language: core.Language{
				ID:   2,
				Name: "Swedish",
			},
		},
		Teams: []core.Team{
			{
				ID:            88888,
				Name:          "Hierarchy Team",
				ShortName:     &shortName,
				IsPrimaryClub: &primary,
				Arena:         &core.Arena{ID: 2000, Name: "Hierarchy Arena"},
				League:        &core.LeagueRef{ID: 1, Name: "Allsvenskan"},
				Country:       &core.CountryRef{ID: 100, Name: "Sweden"},
				Region:        &core.Region{ID: 1001, Name: "Stockholm"},
			},
		},
	}
	if err := factory.TeamStore().SaveTeamDetails(ctx, gen.ID, details); err != nil {
		t.Fatalf("save team details: %v", err)
	}

	// Saving the same team twice within one generation is a no-op.
	if err := factory.TeamStore().SaveTeamDetails(ctx, gen.ID, details); err != nil {
		t.Fatalf("save team details again: %v", err)
	}

	var teamCount int
	if err := client.DB().NewRaw(
		"SELECT COUNT(*) FROM chpp_teams WHERE generation_id = ?", gen.ID,
	).Scan(ctx, &teamCount); err != nil {
		t.Fatalf("count teams: %v", err)
	}
	if teamCount != 1 {
		t.Fatalf("expected 1 team row, got %d", teamCount)
	}

	var loginName string
	if err := client.DB().NewRaw(
		"SELECT login_name FROM chpp_users WHERE id = ?", int64(200),
	).Scan(ctx, &loginName); err != nil {
		t.Fatalf("load user: %v", err)
	}
	if loginName != "manager" {
		t.Fatalf("expected login name manager, got %q", loginName)
	}

	countryID := int64(100)
	countryName := "Sweden"
	countryCode := "SE"
	currencyName := "Swedish Krona"
	currencyRate := "1,25"
	languageID := int64(2)
	languageName := "Swedish"
	season := 90
	world := core.WorldDetails{
		Leagues: []core.WorldLeague{
			{
				ID:   1,
				Name: "Allsvenskan",
				Country: core.WorldCountry{
					ID:           &countryID,
					Name:         &countryName,
					Code:         &countryCode,
					CurrencyName: &currencyName,
					CurrencyRate: &currencyRate,
				},
				LanguageID:   &languageID,
				LanguageName: &languageName,
				Season:       &season,
			},
		},
	}
	if err := factory.WorldStore().SaveWorldDetails(ctx, gen.ID, world); err != nil {
		t.Fatalf("save world details: %v", err)
	}

	var rate float64
	if err := client.DB().NewRaw(
		"SELECT rate FROM chpp_currencies WHERE id = ?", countryID,
	).Scan(ctx, &rate); err != nil {
		t.Fatalf("load currency rate: %v", err)
	}
	if rate != 1.25 {
		t.Fatalf("expected comma decimal rate 1.25, got %v", rate)
	}

	var leagueSeason int
	if err := client.DB().NewRaw(
		"SELECT season FROM chpp_leagues WHERE id = ?", int64(1),
	).Scan(ctx, &leagueSeason); err != nil {
		t.Fatalf("load league season: %v", err)
	}
	if leagueSeason != 90 {
		t.Fatalf("expected season 90, got %d", leagueSeason)
	}

	// The team feed carries no country code; re-saving the team must leave
	// the code from the world feed in place.
	if err := factory.TeamStore().SaveTeamDetails(ctx, gen.ID, details); err != nil {
		t.Fatalf("save team details after world: %v", err)
	}
	var code sql.NullString
	if err := client.DB().NewRaw(
		"SELECT code FROM chpp_countries WHERE id = ?", countryID,
	).Scan(ctx, &code); err != nil {
		t.Fatalf("load country code: %v", err)
	}
	if !code.Valid || code.String != "SE" {
		t.Fatalf("expected country code SE to survive partial upsert, got %+v", code)
	}
}

func TestPlayerStore_UpsertsPerGeneration(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}

	shirt := 9
	players := []core.Player{
		{
			ID:          101,
			FirstName:   "First",
			LastName:    "Player",
			Age:         24,
			TSI:         1200,
			ShirtNumber: &shirt,
			Skills: &core.PlayerSkills{
				Stamina: 7,
				Scorer:  9,
			},
			LastMatch: &core.LastMatch{
				Date:          "2026-08-20 20:00:00",
				MatchID:       555,
				PositionCode:  100,
				PlayedMinutes: 90,
			},
		},
		{
			ID:        102,
			FirstName: "Second",
			LastName:  "Player",
			Age:       19,
			TSI:       800,
		},
	}
	if err := factory.PlayerStore().SavePlayers(ctx, "gen-p", 42, players); err != nil {
		t.Fatalf("save players: %v", err)
	}
	if err := factory.PlayerStore().SavePlayers(ctx, "gen-p", 42, players[:1]); err != nil {
		t.Fatalf("save players replay: %v", err)
	}

	var playerCount int
	if err := client.DB().NewRaw(
		"SELECT COUNT(*) FROM chpp_players WHERE generation_id = ?", "gen-p",
	).Scan(ctx, &playerCount); err != nil {
		t.Fatalf("count players: %v", err)
	}
	if playerCount != 2 {
		t.Fatalf("expected 2 player rows, got %d", playerCount)
	}

	var scorer sql.NullInt64
	if err := client.DB().NewRaw(
		"SELECT scorer_skill FROM chpp_players WHERE id = ? AND generation_id = ?", int64(101), "gen-p",
	).Scan(ctx, &scorer); err != nil {
		t.Fatalf("load scorer skill: %v", err)
	}
	if !scorer.Valid || scorer.Int64 != 9 {
		t.Fatalf("expected scorer skill 9, got %+v", scorer)
	}

	if err := client.DB().NewRaw(
		"SELECT scorer_skill FROM chpp_players WHERE id = ? AND generation_id = ?", int64(102), "gen-p",
	).Scan(ctx, &scorer); err != nil {
		t.Fatalf("load missing scorer skill: %v", err)
	}
	if scorer.Valid {
		t.Fatalf("expected null scorer skill for basic player, got %d", scorer.Int64)
	}
}

func TestTeamAndPlayerReaders_ReadBackStoredRows(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	teamStore, err := sqlstore.NewTeamStore(client.DB())
	if err != nil {
		t.Fatalf("new team store: %v", err)
	}
	playerStore, err := sqlstore.NewPlayerStore(client.DB())
	if err != nil {
		t.Fatalf("new player store: %v", err)
	}

	primary := true
	details := core.TeamDetails{
		User: core.User{
			ID:        300,
			Name:      "Reader",
			LoginName: "reader",
			Language:  core.Language{ID: 2, Name: "Swedish"},
		},
		Teams: []core.Team{
			{
				ID:            77777,
				Name:          "Readback United",
				IsPrimaryClub: &primary,
				Arena:         &core.Arena{ID: 3000, Name: "Readback Arena"},
				Country:       &core.CountryRef{ID: 100, Name: "Sweden"},
			},
			{
				ID:   77778,
				Name: "Readback Reserves",
			},
		},
	}
	if err := teamStore.SaveTeamDetails(ctx, "gen-read", details); err != nil {
		t.Fatalf("save team details: %v", err)
	}

	summaries, err := teamStore.ListTeamSummaries(ctx, "gen-read")
	if err != nil {
		t.Fatalf("list team summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 team summaries, got %d", len(summaries))
	}
	if summaries[0].ID != 77777 || summaries[0].Name != "Readback United" {
		t.Fatalf("unexpected first summary: %#v", summaries[0])
	}

	team, err := teamStore.GetTeam(ctx, "gen-read", 77777)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if team.Arena == nil || team.Arena.Name != "Readback Arena" {
		t.Fatalf("expected arena to survive the round trip, got %#v", team.Arena)
	}
	if team.IsPrimaryClub == nil || !*team.IsPrimaryClub {
		t.Fatalf("expected primary club flag to survive the round trip")
	}

	if _, err := teamStore.GetTeam(ctx, "gen-read", 99999); !errors.Is(err, core.ErrTeamNotFound) {
		t.Fatalf("expected team not found, got %v", err)
	}

	rating := 6.5
	players := []core.Player{
		{
			ID:        501,
			FirstName: "Back",
			LastName:  "Reader",
			Age:       27,
			TSI:       4200,
			Skills:    &core.PlayerSkills{Stamina: 8, Defender: 12},
			LastMatch: &core.LastMatch{
				Date:          "2026-08-23 15:00:00",
				MatchID:       777,
				PositionCode:  103,
				PlayedMinutes: 90,
				Rating:        &rating,
			},
		},
		{
			ID:        502,
			FirstName: "Bench",
			LastName:  "Reader",
			Age:       17,
			TSI:       500,
		},
	}
	if err := playerStore.SavePlayers(ctx, "gen-read", 77777, players); err != nil {
		t.Fatalf("save players: %v", err)
	}

	loaded, err := playerStore.ListPlayersForTeam(ctx, "gen-read", 77777)
	if err != nil {
		t.Fatalf("list players for team: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 players, got %d", len(loaded))
	}
	if loaded[0].Skills == nil || loaded[0].Skills.Defender != 12 {
		t.Fatalf("expected defender skill to survive the round trip, got %#v", loaded[0].Skills)
	}
	if loaded[0].LastMatch == nil || loaded[0].LastMatch.Rating == nil || *loaded[0].LastMatch.Rating != 6.5 {
		t.Fatalf("expected last match rating to survive the round trip, got %#v", loaded[0].LastMatch)
	}
	if loaded[1].Skills != nil {
		t.Fatalf("expected basic player to stay skill-free, got %#v", loaded[1].Skills)
	}

	other, err := playerStore.ListPlayersForTeam(ctx, "gen-read", 12345)
	if err != nil {
		t.Fatalf("list players for other team: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no players for unknown team, got %d", len(other))
	}
}

func TestSecretStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.SecretStore()

	if _, err := store.Get(ctx, core.SecretKeyAccessToken); !errors.Is(err, core.ErrMissingCredentials) {
		t.Fatalf("expected missing credentials error, got %v", err)
	}

	if err := store.Set(ctx, core.SecretKeyAccessToken, "token-1"); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	value, err := store.Get(ctx, core.SecretKeyAccessToken)
	if err != nil {
		t.Fatalf("get secret: %v", err)
	}
	if value != "token-1" {
		t.Fatalf("expected token-1, got %q", value)
	}

	if err := store.Set(ctx, core.SecretKeyAccessToken, "token-2"); err != nil {
		t.Fatalf("overwrite secret: %v", err)
	}
	value, err = store.Get(ctx, core.SecretKeyAccessToken)
	if err != nil {
		t.Fatalf("get overwritten secret: %v", err)
	}
	if value != "token-2" {
		t.Fatalf("expected token-2, got %q", value)
	}

	if err := store.Delete(ctx, core.SecretKeyAccessToken); err != nil {
		t.Fatalf("delete secret: %v", err)
	}
	if _, err := store.Get(ctx, core.SecretKeyAccessToken); !errors.Is(err, core.ErrMissingCredentials) {
		t.Fatalf("expected missing credentials after delete, got %v", err)
	}
	if err := store.Delete(ctx, "never-stored"); err != nil {
		t.Fatalf("delete of unknown name should be a no-op, got %v", err)
	}
}

func TestCachedGenerationStore_CachesLatestCompleted(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}

	cacheConfig := repositorycache.DefaultConfig()
	cacheConfig.TTL = time.Minute
	cacheService, err := repositorycache.NewCacheService(cacheConfig)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}

	cached, err := sqlstore.NewCachedGenerationStore(factory.GenerationStore(), cacheService)
	if err != nil {
		t.Fatalf("new cached generation store: %v", err)
	}

	if err := cached.Create(ctx, core.Generation{ID: "gen-a", Status: core.GenerationStatusInProgress}); err != nil {
		t.Fatalf("create gen-a: %v", err)
	}
	if err := cached.Complete(ctx, "gen-a", core.GenerationStatusCompleted); err != nil {
		t.Fatalf("complete gen-a: %v", err)
	}

	latest, err := cached.LatestCompleted(ctx)
	if err != nil {
		t.Fatalf("latest completed: %v", err)
	}
	if latest.ID != "gen-a" {
		t.Fatalf("expected gen-a, got %q", latest.ID)
	}

	if err := cached.Create(ctx, core.Generation{ID: "gen-b", Status: core.GenerationStatusInProgress}); err != nil {
		t.Fatalf("create gen-b: %v", err)
	}
	if err := cached.Complete(ctx, "gen-b", core.GenerationStatusCompleted); err != nil {
		t.Fatalf("complete gen-b: %v", err)
	}

	latest, err = cached.LatestCompleted(ctx)
	if err != nil {
		t.Fatalf("latest completed after invalidation: %v", err)
	}
	if latest.ID != "gen-b" {
		t.Fatalf("expected cache invalidation to surface gen-b, got %q", latest.ID)
	}
}

func newSQLiteClient(t *testing.T) (*persistence.Client, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:chpp-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := testPersistenceConfig{
		driver: "sqlite3",
		server: dsn,
	}
	client, err := persistence.New(cfg, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("new persistence client: %v", err)
	}

	ctx := context.Background()
	_, err = chppmigrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != chppmigrations.DialectSQLite {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, chppmigrations.WithValidationTargets(chppmigrations.DialectSQLite))
	if err != nil {
		_ = client.Close()
		t.Fatalf("register migrations: %v", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		t.Fatalf("migrate: %v", err)
	}

	return client, func() {
		_ = client.Close()
	}
}
