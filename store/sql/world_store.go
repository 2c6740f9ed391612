package sqlstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-chpp/core"
	"github.com/uptrace/bun"
)

type WorldStore struct {
	db *bun.DB
}

func NewWorldStore(db *bun.DB) (*WorldStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &WorldStore{db: db}, nil
}

// SaveWorldDetails writes the global reference data set. Per league the
// order is language, currency, country, league so foreign references always
// resolve. Reference rows are shared across generations and upserted in
// place.
func (s *WorldStore) SaveWorldDetails(ctx context.Context, generationID string, details core.WorldDetails) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: world store is not configured")
	}
	if strings.TrimSpace(generationID) == "" {
		return fmt.Errorf("sqlstore: generation id is required")
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, league := range details.Leagues {
			if league.LanguageID != nil && league.LanguageName != nil {
				language := core.Language{
					ID:   *league.LanguageID,
					Name: *league.LanguageName,
				}
				if err := upsertLanguage(ctx, tx, language); err != nil {
					return err
				}
			}
			if err := saveWorldCurrency(ctx, tx, league.Country); err != nil {
				return err
			}
			if league.Country.ID != nil {
				country := countryRecord{
					ID:         *league.Country.ID,
					Code:       league.Country.Code,
					DateFormat: league.Country.DateFormat,
					TimeFormat: league.Country.TimeFormat,
				}
				if league.Country.Name != nil {
					country.Name = *league.Country.Name
				}
				if err := upsertCountry(ctx, tx, country); err != nil {
					return err
				}
			}
			record := leagueRecord{
				ID:             league.ID,
				Name:           league.Name,
				ShortName:      league.ShortName,
				EnglishName:    league.EnglishName,
				Continent:      league.Continent,
				ZoneName:       league.ZoneName,
				CountryID:      league.Country.ID,
				LanguageID:     league.LanguageID,
				Season:         league.Season,
				SeasonOffset:   league.SeasonOffset,
				MatchRound:     league.MatchRound,
				NationalTeamID: league.NationalTeamID,
				U20TeamID:      league.U20TeamID,
				ActiveTeams:    league.ActiveTeams,
				ActiveUsers:    league.ActiveUsers,
				NumberOfLevels: league.NumberOfLevels,
			}
			if err := upsertLeague(ctx, tx, record, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return core.NewStorageError(err, "save world details")
	}
	return nil
}

// saveWorldCurrency derives the currency row from the country attributes.
// The feed has no currency id so the country id stands in for it, and the
// name doubles as the symbol until a richer source exists.
func saveWorldCurrency(ctx context.Context, tx bun.Tx, country core.WorldCountry) error {
	if country.ID == nil || country.CurrencyName == nil {
		return nil
	}
	record := &currencyRecord{
		ID:     *country.ID,
		Name:   *country.CurrencyName,
		Symbol: *country.CurrencyName,
		Rate:   parseCurrencyRate(country.CurrencyRate),
	}
	_, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("rate = EXCLUDED.rate").
		Set("symbol = EXCLUDED.symbol").
		Exec(ctx)
	return err
}

// parseCurrencyRate accepts the gateway's comma decimal notation. An
// unparsable rate is stored as null rather than failing the run.
func parseCurrencyRate(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	normalized := strings.ReplaceAll(strings.TrimSpace(*raw), ",", ".")
	rate, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return &rate
}
