package sqlstore

import (
	"time"

	"github.com/goliatone/go-chpp/core"
	"github.com/uptrace/bun"
)

type generationRecord struct {
	bun.BaseModel `bun:"table:chpp_generations,alias:g"`

	ID          string     `bun:"id,pk"`
	Status      string     `bun:"status,notnull"`
	StartedAt   time.Time  `bun:"started_at,notnull"`
	CompletedAt *time.Time `bun:"completed_at,nullzero"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r *generationRecord) toDomain() core.Generation {
	if r == nil {
		return core.Generation{}
	}
	gen := core.Generation{
		ID:        r.ID,
		Timestamp: r.StartedAt,
		Status:    core.GenerationStatus(r.Status),
	}
	if r.CompletedAt != nil {
		gen.Timestamp = *r.CompletedAt
	}
	return gen
}

type userRecord struct {
	bun.BaseModel `bun:"table:chpp_users,alias:u"`

	ID                int64     `bun:"id,pk"`
	LoginName         string    `bun:"login_name,notnull"`
	Name              string    `bun:"name,notnull"`
	SupporterTier     string    `bun:"supporter_tier"`
	SignupDate        string    `bun:"signup_date"`
	ActivationDate    string    `bun:"activation_date"`
	LastLoginDate     string    `bun:"last_login_date"`
	HasManagerLicense bool      `bun:"has_manager_license,notnull"`
	LanguageID        *int64    `bun:"language_id"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type languageRecord struct {
	bun.BaseModel `bun:"table:chpp_languages,alias:lg"`

	ID   int64  `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

// currencyRecord uses the country id as its primary key. The world feed
// never exposes a currency id of its own, and each country carries exactly
// one currency.
type currencyRecord struct {
	bun.BaseModel `bun:"table:chpp_currencies,alias:cur"`

	ID     int64    `bun:"id,pk"`
	Name   string   `bun:"name,notnull"`
	Rate   *float64 `bun:"rate"`
	Symbol string   `bun:"symbol"`
}

type countryRecord struct {
	bun.BaseModel `bun:"table:chpp_countries,alias:c"`

	ID         int64   `bun:"id,pk"`
	Name       string  `bun:"name,notnull"`
	Code       *string `bun:"code"`
	DateFormat *string `bun:"date_format"`
	TimeFormat *string `bun:"time_format"`
}

type leagueRecord struct {
	bun.BaseModel `bun:"table:chpp_leagues,alias:l"`

	ID             int64   `bun:"id,pk"`
	Name           string  `bun:"name,notnull"`
	ShortName      *string `bun:"short_name"`
	EnglishName    *string `bun:"english_name"`
	Continent      *string `bun:"continent"`
	ZoneName       *string `bun:"zone_name"`
	CountryID      *int64  `bun:"country_id"`
	LanguageID     *int64  `bun:"language_id"`
	Season         *int    `bun:"season"`
	SeasonOffset   *int    `bun:"season_offset"`
	MatchRound     *int    `bun:"match_round"`
	NationalTeamID *int64  `bun:"national_team_id"`
	U20TeamID      *int64  `bun:"u20_team_id"`
	ActiveTeams    *int    `bun:"active_teams"`
	ActiveUsers    *int    `bun:"active_users"`
	NumberOfLevels *int    `bun:"number_of_levels"`
}

type teamRecord struct {
	bun.BaseModel `bun:"table:chpp_teams,alias:t"`

	ID           int64  `bun:"id,pk"`
	GenerationID string `bun:"generation_id,pk"`

	UserID              int64   `bun:"user_id,notnull"`
	Name                string  `bun:"name,notnull"`
	ShortName           *string `bun:"short_name"`
	IsPrimaryClub       *bool   `bun:"is_primary_club"`
	FoundedDate         *string `bun:"founded_date"`
	ArenaID             *int64  `bun:"arena_id"`
	ArenaName           *string `bun:"arena_name"`
	LeagueID            *int64  `bun:"league_id"`
	LeagueName          *string `bun:"league_name"`
	CountryID           *int64  `bun:"country_id"`
	CountryName         *string `bun:"country_name"`
	RegionID            *int64  `bun:"region_id"`
	RegionName          *string `bun:"region_name"`
	TrainerID           *int64  `bun:"trainer_id"`
	HomePage            *string `bun:"homepage"`
	LogoURL             *string `bun:"logo_url"`
	DressURI            *string `bun:"dress_uri"`
	DressAlternateURI   *string `bun:"dress_alternate_uri"`
	FanclubID           *int64  `bun:"fanclub_id"`
	FanclubName         *string `bun:"fanclub_name"`
	FanclubSize         *int    `bun:"fanclub_size"`
	LeagueLevelUnitID   *int64  `bun:"league_level_unit_id"`
	LeagueLevelUnitName *string `bun:"league_level_unit_name"`
	LeagueLevel         *int    `bun:"league_level"`
	TeamRank            *int    `bun:"team_rank"`
	YouthTeamID         *int64  `bun:"youth_team_id"`
	YouthTeamName       *string `bun:"youth_team_name"`
	NumberOfVisits      *int    `bun:"number_of_visits"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r *teamRecord) toDomain() core.Team {
	if r == nil {
		return core.Team{}
	}
	team := core.Team{
		ID:                r.ID,
		Name:              r.Name,
		ShortName:         r.ShortName,
		IsPrimaryClub:     r.IsPrimaryClub,
		FoundedDate:       r.FoundedDate,
		TrainerID:         r.TrainerID,
		HomePage:          r.HomePage,
		LogoURL:           r.LogoURL,
		DressURI:          r.DressURI,
		DressAlternateURI: r.DressAlternateURI,
		TeamRank:          r.TeamRank,
		YouthTeamID:       r.YouthTeamID,
		YouthTeamName:     r.YouthTeamName,
		NumberOfVisits:    r.NumberOfVisits,
	}
	if r.ArenaID != nil {
		team.Arena = &core.Arena{ID: *r.ArenaID, Name: derefString(r.ArenaName)}
	}
	if r.LeagueID != nil {
		team.League = &core.LeagueRef{ID: *r.LeagueID, Name: derefString(r.LeagueName)}
	}
	if r.CountryID != nil {
		team.Country = &core.CountryRef{ID: *r.CountryID, Name: derefString(r.CountryName)}
	}
	if r.RegionID != nil {
		team.Region = &core.Region{ID: *r.RegionID, Name: derefString(r.RegionName)}
	}
	if r.FanclubID != nil {
		team.Fanclub = &core.Fanclub{ID: *r.FanclubID, Name: derefString(r.FanclubName), Size: derefInt(r.FanclubSize)}
	}
	if r.LeagueLevelUnitID != nil {
		team.LeagueLevelUnit = &core.LeagueLevelUnit{
			ID:    *r.LeagueLevelUnitID,
			Name:  derefString(r.LeagueLevelUnitName),
			Level: derefInt(r.LeagueLevel),
		}
	}
	return team
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

type playerRecord struct {
	bun.BaseModel `bun:"table:chpp_players,alias:p"`

	ID           int64  `bun:"id,pk"`
	GenerationID string `bun:"generation_id,pk"`
	TeamID       int64  `bun:"team_id,notnull"`

	FirstName string  `bun:"first_name,notnull"`
	LastName  string  `bun:"last_name,notnull"`
	NickName  *string `bun:"nick_name"`

	Age             int  `bun:"age,notnull"`
	AgeDays         *int `bun:"age_days"`
	ShirtNumber     *int `bun:"shirt_number"`
	TSI             int  `bun:"tsi,notnull"`
	Form            int  `bun:"form,notnull"`
	Experience      int  `bun:"experience,notnull"`
	Loyalty         int  `bun:"loyalty,notnull"`
	Leadership      int  `bun:"leadership,notnull"`
	Salary          int  `bun:"salary,notnull"`
	Agreeability    int  `bun:"agreeability,notnull"`
	Aggressiveness  int  `bun:"aggressiveness,notnull"`
	Honesty         int  `bun:"honesty,notnull"`
	IsAbroad        bool `bun:"is_abroad,notnull"`
	MotherClubBonus bool `bun:"mother_club_bonus,notnull"`
	TransferListed  bool `bun:"transfer_listed,notnull"`

	Statement       *string `bun:"statement"`
	LeagueGoals     *int    `bun:"league_goals"`
	CupGoals        *int    `bun:"cup_goals"`
	FriendliesGoals *int    `bun:"friendlies_goals"`
	CareerGoals     *int    `bun:"career_goals"`
	CareerHattricks *int    `bun:"career_hattricks"`
	CareerAssists   *int    `bun:"career_assists"`
	Specialty       *int    `bun:"specialty"`
	NationalTeamID  *int64  `bun:"national_team_id"`
	CountryID       *int64  `bun:"country_id"`
	Caps            *int    `bun:"caps"`
	CapsU20         *int    `bun:"caps_u20"`
	Cards           *int    `bun:"cards"`
	InjuryLevel     *int    `bun:"injury_level"`
	Sticker         *string `bun:"sticker"`
	CategoryID      *int    `bun:"category_id"`
	ArrivalDate     *string `bun:"arrival_date"`

	StaminaSkill   *int `bun:"stamina_skill"`
	KeeperSkill    *int `bun:"keeper_skill"`
	PlaymakerSkill *int `bun:"playmaker_skill"`
	ScorerSkill    *int `bun:"scorer_skill"`
	PassingSkill   *int `bun:"passing_skill"`
	WingerSkill    *int `bun:"winger_skill"`
	DefenderSkill  *int `bun:"defender_skill"`
	SetPiecesSkill *int `bun:"set_pieces_skill"`

	LastMatchDate          *string  `bun:"last_match_date"`
	LastMatchID            *int64   `bun:"last_match_id"`
	LastMatchPositionCode  *int     `bun:"last_match_position_code"`
	LastMatchPlayedMinutes *int     `bun:"last_match_played_minutes"`
	LastMatchRating        *float64 `bun:"last_match_rating"`
	LastMatchRatingEnd     *float64 `bun:"last_match_rating_end"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r *playerRecord) toDomain() core.Player {
	if r == nil {
		return core.Player{}
	}
	player := core.Player{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		NickName:  r.NickName,

		Age:             r.Age,
		TSI:             r.TSI,
		Form:            r.Form,
		Experience:      r.Experience,
		Loyalty:         r.Loyalty,
		Leadership:      r.Leadership,
		Salary:          r.Salary,
		Agreeability:    r.Agreeability,
		Aggressiveness:  r.Aggressiveness,
		Honesty:         r.Honesty,
		IsAbroad:        r.IsAbroad,
		MotherClubBonus: r.MotherClubBonus,
		TransferListed:  r.TransferListed,

		ShirtNumber:     r.ShirtNumber,
		AgeDays:         r.AgeDays,
		Statement:       r.Statement,
		LeagueGoals:     r.LeagueGoals,
		CupGoals:        r.CupGoals,
		FriendliesGoals: r.FriendliesGoals,
		CareerGoals:     r.CareerGoals,
		CareerHattricks: r.CareerHattricks,
		CareerAssists:   r.CareerAssists,
		Specialty:       r.Specialty,
		NationalTeamID:  r.NationalTeamID,
		CountryID:       r.CountryID,
		Caps:            r.Caps,
		CapsU20:         r.CapsU20,
		Cards:           r.Cards,
		InjuryLevel:     r.InjuryLevel,
		Sticker:         r.Sticker,
		CategoryID:      r.CategoryID,
		ArrivalDate:     r.ArrivalDate,
	}
	if r.StaminaSkill != nil {
		player.Skills = &core.PlayerSkills{
			Stamina:   derefInt(r.StaminaSkill),
			Keeper:    derefInt(r.KeeperSkill),
			Playmaker: derefInt(r.PlaymakerSkill),
			Scorer:    derefInt(r.ScorerSkill),
			Passing:   derefInt(r.PassingSkill),
			Winger:    derefInt(r.WingerSkill),
			Defender:  derefInt(r.DefenderSkill),
			SetPieces: derefInt(r.SetPiecesSkill),
		}
	}
	if r.LastMatchID != nil {
		player.LastMatch = &core.LastMatch{
			Date:             derefString(r.LastMatchDate),
			MatchID:          *r.LastMatchID,
			PositionCode:     derefInt(r.LastMatchPositionCode),
			PlayedMinutes:    derefInt(r.LastMatchPlayedMinutes),
			Rating:           r.LastMatchRating,
			RatingEndOfMatch: r.LastMatchRatingEnd,
		}
	}
	return player
}

type secretRecord struct {
	bun.BaseModel `bun:"table:chpp_secrets,alias:s"`

	Name      string    `bun:"name,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
