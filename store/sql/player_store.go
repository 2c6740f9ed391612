package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-chpp/core"
	"github.com/uptrace/bun"
)

type PlayerStore struct {
	db *bun.DB
}

func NewPlayerStore(db *bun.DB) (*PlayerStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &PlayerStore{db: db}, nil
}

// SavePlayers writes one row per merged player keyed by (id, generation_id).
// A row written earlier in the same generation is left untouched.
func (s *PlayerStore) SavePlayers(ctx context.Context, generationID string, teamID int64, players []core.Player) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: player store is not configured")
	}
	generationID = strings.TrimSpace(generationID)
	if generationID == "" {
		return fmt.Errorf("sqlstore: generation id is required")
	}
	if len(players) == 0 {
		return nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, player := range players {
			record := newPlayerRecord(generationID, teamID, player)
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
		return core.NewStorageError(err, "save players")
	}
	return nil
}

// ListPlayersForTeam returns every player stored for one team within a
// single generation, ordered by player id.
func (s *PlayerStore) ListPlayersForTeam(ctx context.Context, generationID string, teamID int64) ([]core.Player, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: player store is not configured")
	}
	generationID = strings.TrimSpace(generationID)
	if generationID == "" {
		return nil, fmt.Errorf("sqlstore: generation id is required")
	}

	var records []*playerRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.generation_id = ?", generationID).
		Where("?TableAlias.team_id = ?", teamID).
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, core.NewStorageError(err, "list players for team")
	}

	players := make([]core.Player, 0, len(records))
	for _, record := range records {
		players = append(players, record.toDomain())
	}
	return players, nil
}

func newPlayerRecord(generationID string, teamID int64, player core.Player) *playerRecord {
	record := &playerRecord{
		ID:           player.ID,
		GenerationID: generationID,
		TeamID:       teamID,

		FirstName: player.FirstName,
		LastName:  player.LastName,
		NickName:  player.NickName,

		Age:             player.Age,
		AgeDays:         player.AgeDays,
		ShirtNumber:     player.ShirtNumber,
		TSI:             player.TSI,
		Form:            player.Form,
		Experience:      player.Experience,
		Loyalty:         player.Loyalty,
		Leadership:      player.Leadership,
		Salary:          player.Salary,
		Agreeability:    player.Agreeability,
		Aggressiveness:  player.Aggressiveness,
		Honesty:         player.Honesty,
		IsAbroad:        player.IsAbroad,
		MotherClubBonus: player.MotherClubBonus,
		TransferListed:  player.TransferListed,

		Statement:       player.Statement,
		LeagueGoals:     player.LeagueGoals,
		CupGoals:        player.CupGoals,
		FriendliesGoals: player.FriendliesGoals,
		CareerGoals:     player.CareerGoals,
		CareerHattricks: player.CareerHattricks,
		CareerAssists:   player.CareerAssists,
		Specialty:       player.Specialty,
		NationalTeamID:  player.NationalTeamID,
		CountryID:       player.CountryID,
		Caps:            player.Caps,
		CapsU20:         player.CapsU20,
		Cards:           player.Cards,
		InjuryLevel:     player.InjuryLevel,
		Sticker:         player.Sticker,
		CategoryID:      player.CategoryID,
		ArrivalDate:     player.ArrivalDate,

		CreatedAt: time.Now().UTC(),
	}
	if skills := player.Skills; skills != nil {
		record.StaminaSkill = &skills.Stamina
		record.KeeperSkill = &skills.Keeper
		record.PlaymakerSkill = &skills.Playmaker
		record.ScorerSkill = &skills.Scorer
		record.PassingSkill = &skills.Passing
		record.WingerSkill = &skills.Winger
		record.DefenderSkill = &skills.Defender
		record.SetPiecesSkill = &skills.SetPieces
	}
	if lastMatch := player.LastMatch; lastMatch != nil {
		record.LastMatchDate = &lastMatch.Date
		record.LastMatchID = &lastMatch.MatchID
		record.LastMatchPositionCode = &lastMatch.PositionCode
		record.LastMatchPlayedMinutes = &lastMatch.PlayedMinutes
		record.LastMatchRating = lastMatch.Rating
		record.LastMatchRatingEnd = lastMatch.RatingEndOfMatch
	}
	return record
}
