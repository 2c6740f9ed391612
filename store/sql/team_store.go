package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-chpp/core"
	"github.com/uptrace/bun"
)

type TeamStore struct {
	db *bun.DB
}

func NewTeamStore(db *bun.DB) (*TeamStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &TeamStore{db: db}, nil
}

// SaveTeamDetails persists the authenticated user and every club they own
// under one generation. Reference rows the teams point at (language,
// country, league) are written first so the team rows never dangle.
func (s *TeamStore) SaveTeamDetails(ctx context.Context, generationID string, details core.TeamDetails) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: team store is not configured")
	}
	generationID = strings.TrimSpace(generationID)
	if generationID == "" {
		return fmt.Errorf("sqlstore: generation id is required")
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := upsertLanguage(ctx, tx, details.User.Language); err != nil {
			return err
		}
		if err := upsertUser(ctx, tx, details.User); err != nil {
			return err
		}
		for _, team := range details.Teams {
			if team.Country != nil {
				country := countryRecord{
					ID:   team.Country.ID,
					Name: team.Country.Name,
				}
				if err := upsertCountry(ctx, tx, country); err != nil {
					return err
				}
			}
			if team.League != nil {
				league := leagueRecord{
					ID:   team.League.ID,
					Name: team.League.Name,
				}
				if team.Country != nil {
					league.CountryID = &team.Country.ID
				}
				if err := upsertLeague(ctx, tx, league, false); err != nil {
					return err
				}
			}
			record := newTeamRecord(generationID, details.User.ID, team)
			if _, err := tx.NewInsert().
				Model(record).
				On("CONFLICT (id, generation_id) DO NOTHING").
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return core.NewStorageError(err, "save team details")
	}
	return nil
}

// ListTeamSummaries returns id and name for every team stored under one
// generation, ordered by team id.
func (s *TeamStore) ListTeamSummaries(ctx context.Context, generationID string) ([]core.TeamSummary, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: team store is not configured")
	}
	generationID = strings.TrimSpace(generationID)
	if generationID == "" {
		return nil, fmt.Errorf("sqlstore: generation id is required")
	}

	var records []*teamRecord
	err := s.db.NewSelect().
		Model(&records).
		Column("id", "name").
		Where("?TableAlias.generation_id = ?", generationID).
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, core.NewStorageError(err, "list team summaries")
	}

	summaries := make([]core.TeamSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, core.TeamSummary{ID: record.ID, Name: record.Name})
	}
	return summaries, nil
}

// GetTeam loads one stored team by id within a generation.
func (s *TeamStore) GetTeam(ctx context.Context, generationID string, teamID int64) (core.Team, error) {
	if s == nil || s.db == nil {
		return core.Team{}, fmt.Errorf("sqlstore: team store is not configured")
	}
	generationID = strings.TrimSpace(generationID)
	if generationID == "" {
		return core.Team{}, fmt.Errorf("sqlstore: generation id is required")
	}

	record := new(teamRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", teamID).
		Where("?TableAlias.generation_id = ?", generationID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Team{}, fmt.Errorf("%w: id %d", core.ErrTeamNotFound, teamID)
		}
		return core.Team{}, core.NewStorageError(err, "get team")
	}
	return record.toDomain(), nil
}

func newTeamRecord(generationID string, userID int64, team core.Team) *teamRecord {
	record := &teamRecord{
		ID:                team.ID,
		GenerationID:      generationID,
		UserID:            userID,
		Name:              team.Name,
		ShortName:         team.ShortName,
		IsPrimaryClub:     team.IsPrimaryClub,
		FoundedDate:       team.FoundedDate,
		TrainerID:         team.TrainerID,
		HomePage:          team.HomePage,
		LogoURL:           team.LogoURL,
		DressURI:          team.DressURI,
		DressAlternateURI: team.DressAlternateURI,
		TeamRank:          team.TeamRank,
		YouthTeamID:       team.YouthTeamID,
		YouthTeamName:     team.YouthTeamName,
		NumberOfVisits:    team.NumberOfVisits,
		CreatedAt:         time.Now().UTC(),
	}
	if team.Arena != nil {
		record.ArenaID = &team.Arena.ID
		record.ArenaName = &team.Arena.Name
	}
	if team.League != nil {
		record.LeagueID = &team.League.ID
		record.LeagueName = &team.League.Name
	}
	if team.Country != nil {
		record.CountryID = &team.Country.ID
		record.CountryName = &team.Country.Name
	}
	if team.Region != nil {
		record.RegionID = &team.Region.ID
		record.RegionName = &team.Region.Name
	}
	if team.Fanclub != nil {
		record.FanclubID = &team.Fanclub.ID
		record.FanclubName = &team.Fanclub.Name
		record.FanclubSize = &team.Fanclub.Size
	}
	if team.LeagueLevelUnit != nil {
		record.LeagueLevelUnitID = &team.LeagueLevelUnit.ID
		record.LeagueLevelUnitName = &team.LeagueLevelUnit.Name
		record.LeagueLevel = &team.LeagueLevelUnit.Level
	}
	return record
}

func upsertUser(ctx context.Context, tx bun.Tx, user core.User) error {
	record := &userRecord{
		ID:                user.ID,
		LoginName:         user.LoginName,
		Name:              user.Name,
		SupporterTier:     user.SupporterTier,
		SignupDate:        user.SignupDate,
		ActivationDate:    user.ActivationDate,
		LastLoginDate:     user.LastLoginDate,
		HasManagerLicense: user.HasManagerLicense,
		UpdatedAt:         time.Now().UTC(),
	}
	if user.Language.ID != 0 {
		record.LanguageID = &user.Language.ID
	}
	_, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("login_name = EXCLUDED.login_name").
		Set("name = EXCLUDED.name").
		Set("supporter_tier = EXCLUDED.supporter_tier").
		Set("last_login_date = EXCLUDED.last_login_date").
		Set("has_manager_license = EXCLUDED.has_manager_license").
		Set("language_id = EXCLUDED.language_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func upsertLanguage(ctx context.Context, tx bun.Tx, language core.Language) error {
	if language.ID == 0 {
		return nil
	}
	record := &languageRecord{
		ID:   language.ID,
		Name: language.Name,
	}
	_, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Exec(ctx)
	return err
}

func upsertCountry(ctx context.Context, tx bun.Tx, record countryRecord) error {
	_, err := tx.NewInsert().
		Model(&record).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("code = coalesce(EXCLUDED.code, ?TableAlias.code)").
		Set("date_format = coalesce(EXCLUDED.date_format, ?TableAlias.date_format)").
		Set("time_format = coalesce(EXCLUDED.time_format, ?TableAlias.time_format)").
		Exec(ctx)
	return err
}

// upsertLeague is shared by the team and world paths. The world feed carries
// the full league attribute set, the team feed only id and name; full writes
// overwrite every column while partial writes leave the extras alone.
func upsertLeague(ctx context.Context, tx bun.Tx, record leagueRecord, full bool) error {
	insert := tx.NewInsert().
		Model(&record).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name")
	if full {
		insert = insert.
			Set("short_name = EXCLUDED.short_name").
			Set("english_name = EXCLUDED.english_name").
			Set("continent = EXCLUDED.continent").
			Set("zone_name = EXCLUDED.zone_name").
			Set("country_id = EXCLUDED.country_id").
			Set("language_id = EXCLUDED.language_id").
			Set("season = EXCLUDED.season").
			Set("season_offset = EXCLUDED.season_offset").
			Set("match_round = EXCLUDED.match_round").
			Set("national_team_id = EXCLUDED.national_team_id").
			Set("u20_team_id = EXCLUDED.u20_team_id").
			Set("active_teams = EXCLUDED.active_teams").
			Set("active_users = EXCLUDED.active_users").
			Set("number_of_levels = EXCLUDED.number_of_levels")
	}
	_, err := insert.Exec(ctx)
	return err
}
