package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidGenerationStatusTransition = errors.New("core: invalid generation status transition")
	ErrGenerationNotFound                = errors.New("core: generation not found")
	ErrMissingCredentials                = errors.New("core: stored access credentials not found")
	ErrTeamNotFound                      = errors.New("core: team not found")
)

// ConsumerCredentials identify the application against the CHPP gateway.
// They are issued out-of-band and never change at runtime.
type ConsumerCredentials struct {
	Key    string
	Secret string
}

func (c ConsumerCredentials) Validate() error {
	if strings.TrimSpace(c.Key) == "" || strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("core: consumer key and secret are required")
	}
	return nil
}

// RequestToken is the short-lived token from the first handshake leg. It is
// discarded once exchanged for an access token.
type RequestToken struct {
	Token  string
	Secret string
}

func (t RequestToken) Validate() error {
	if strings.TrimSpace(t.Token) == "" || strings.TrimSpace(t.Secret) == "" {
		return fmt.Errorf("core: request token and secret are required")
	}
	return nil
}

// AccessToken is the long-lived credential used to sign every data request.
type AccessToken struct {
	Token  string
	Secret string
}

func (t AccessToken) IsZero() bool {
	return strings.TrimSpace(t.Token) == "" && strings.TrimSpace(t.Secret) == ""
}

// SigningContext carries everything one signed request needs. A context is
// valid for exactly one outbound request: the nonce must never be reused or
// the gateway rejects the call as a replay.
type SigningContext struct {
	Consumer        ConsumerCredentials
	Token           AccessToken
	Nonce           string
	Timestamp       int64
	SignatureMethod string
}

type GenerationStatus string

const (
	GenerationStatusInProgress GenerationStatus = "in_progress"
	GenerationStatusCompleted  GenerationStatus = "completed"
)

// Generation scopes one full sync run. Every record written during a run is
// tagged with the generation id; readers only trust the latest generation
// whose status is completed.
type Generation struct {
	ID        string
	Timestamp time.Time
	Status    GenerationStatus
}

func (g *Generation) TransitionTo(status GenerationStatus, now time.Time) error {
	if g == nil {
		return nil
	}
	if g.Status == status {
		return nil
	}
	if g.Status != GenerationStatusInProgress || status != GenerationStatusCompleted {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidGenerationStatusTransition, g.Status, status)
	}
	g.Status = status
	g.Timestamp = now
	return nil
}

type Language struct {
	ID   int64
	Name string
}

type User struct {
	ID                int64
	Name              string
	LoginName         string
	SupporterTier     string
	SignupDate        string
	ActivationDate    string
	LastLoginDate     string
	HasManagerLicense bool
	Language          Language
}

type Currency struct {
	ID     int64
	Name   string
	Rate   *float64
	Symbol string
}

type Arena struct {
	ID   int64
	Name string
}

type Region struct {
	ID   int64
	Name string
}

type LeagueRef struct {
	ID   int64
	Name string
}

type CountryRef struct {
	ID   int64
	Name string
}

type LeagueLevelUnit struct {
	ID    int64
	Name  string
	Level int
}

type Fanclub struct {
	ID   int64
	Name string
	Size int
}

type Team struct {
	ID                int64
	Name              string
	ShortName         *string
	IsPrimaryClub     *bool
	FoundedDate       *string
	Arena             *Arena
	League            *LeagueRef
	Country           *CountryRef
	Region            *Region
	TrainerID         *int64
	HomePage          *string
	LogoURL           *string
	DressURI          *string
	DressAlternateURI *string
	Fanclub           *Fanclub
	LeagueLevelUnit   *LeagueLevelUnit
	TeamRank          *int
	YouthTeamID       *int64
	YouthTeamName     *string
	NumberOfVisits    *int
}

// TeamDetails is the typed teamdetails payload: the authenticated user plus
// every club they own.
type TeamDetails struct {
	User  User
	Teams []Team
}

// PrimaryTeamID picks the team later stages fetch players for. The primary
// club wins; otherwise the first team returned.
func (d TeamDetails) PrimaryTeamID() int64 {
	for _, team := range d.Teams {
		if team.IsPrimaryClub != nil && *team.IsPrimaryClub {
			return team.ID
		}
	}
	if len(d.Teams) > 0 {
		return d.Teams[0].ID
	}
	return 0
}

type WorldCountry struct {
	ID           *int64
	Name         *string
	CurrencyName *string
	CurrencyRate *string
	Code         *string
	DateFormat   *string
	TimeFormat   *string
}

type WorldLeague struct {
	ID             int64
	Name           string
	Country        WorldCountry
	Season         *int
	SeasonOffset   *int
	MatchRound     *int
	ShortName      *string
	Continent      *string
	ZoneName       *string
	EnglishName    *string
	LanguageID     *int64
	LanguageName   *string
	NationalTeamID *int64
	U20TeamID      *int64
	ActiveTeams    *int
	ActiveUsers    *int
	NumberOfLevels *int
}

// WorldDetails is the global reference data set: one entry per league with
// its country, language and currency attributes.
type WorldDetails struct {
	Leagues []WorldLeague
}

type PlayerSkills struct {
	Stamina   int
	Keeper    int
	Playmaker int
	Scorer    int
	Passing   int
	Winger    int
	Defender  int
	SetPieces int
}

type LastMatch struct {
	Date             string
	MatchID          int64
	PositionCode     int
	PlayedMinutes    int
	Rating           *float64
	RatingEndOfMatch *float64
}

type MotherClub struct {
	TeamID int64
	Name   string
}

// Player is the union shape of the players and playerdetails views. Fields
// only one view can populate are pointers; Skills exist solely on the
// detailed view of the caller's own squad.
type Player struct {
	ID        int64
	FirstName string
	LastName  string
	NickName  *string

	Age             int
	TSI             int
	Form            int
	Experience      int
	Loyalty         int
	Leadership      int
	Salary          int
	Agreeability    int
	Aggressiveness  int
	Honesty         int
	IsAbroad        bool
	MotherClubBonus bool
	TransferListed  bool

	ShirtNumber        *int
	AgeDays            *int
	Statement          *string
	ReferencePlayerID  *int64
	LeagueGoals        *int
	CupGoals           *int
	FriendliesGoals    *int
	CareerGoals        *int
	CareerHattricks    *int
	CareerAssists      *int
	Specialty          *int
	NationalTeamID     *int64
	CountryID          *int64
	Caps               *int
	CapsU20            *int
	Cards              *int
	InjuryLevel        *int
	Sticker            *string
	CategoryID         *int
	ArrivalDate        *string
	MotherClub         *MotherClub
	NativeCountryID    *int64
	NativeLeagueID     *int64
	NativeLeagueName   *string
	MatchesCurrentTeam *int
	GoalsCurrentTeam   *int
	AssistsCurrentTeam *int

	Skills    *PlayerSkills
	LastMatch *LastMatch
}

// Roster is the basic player list for one team.
type Roster struct {
	TeamID  int64
	Players []Player
}

// Merge reconciles the basic view (receiver) with an optional detailed view
// of the same player. The detailed record wins wherever it has a value;
// optional fields it lacks are backfilled from the basic record. Skills are
// never backfilled: the basic view structurally cannot carry them.
//
// The merge is pure: neither input is mutated and the same inputs always
// produce the same output.
func (p Player) Merge(detailed *Player) Player {
	if detailed == nil {
		return p
	}
	out := *detailed

	out.NickName = coalesce(detailed.NickName, p.NickName)
	out.ShirtNumber = coalesce(detailed.ShirtNumber, p.ShirtNumber)
	out.AgeDays = coalesce(detailed.AgeDays, p.AgeDays)
	out.Statement = coalesce(detailed.Statement, p.Statement)
	out.ReferencePlayerID = coalesce(detailed.ReferencePlayerID, p.ReferencePlayerID)
	out.LeagueGoals = coalesce(detailed.LeagueGoals, p.LeagueGoals)
	out.CupGoals = coalesce(detailed.CupGoals, p.CupGoals)
	out.FriendliesGoals = coalesce(detailed.FriendliesGoals, p.FriendliesGoals)
	out.CareerGoals = coalesce(detailed.CareerGoals, p.CareerGoals)
	out.CareerHattricks = coalesce(detailed.CareerHattricks, p.CareerHattricks)
	out.CareerAssists = coalesce(detailed.CareerAssists, p.CareerAssists)
	out.Specialty = coalesce(detailed.Specialty, p.Specialty)
	out.NationalTeamID = coalesce(detailed.NationalTeamID, p.NationalTeamID)
	out.CountryID = coalesce(detailed.CountryID, p.CountryID)
	out.Caps = coalesce(detailed.Caps, p.Caps)
	out.CapsU20 = coalesce(detailed.CapsU20, p.CapsU20)
	out.Cards = coalesce(detailed.Cards, p.Cards)
	out.InjuryLevel = coalesce(detailed.InjuryLevel, p.InjuryLevel)
	out.Sticker = coalesce(detailed.Sticker, p.Sticker)
	out.CategoryID = coalesce(detailed.CategoryID, p.CategoryID)
	out.ArrivalDate = coalesce(detailed.ArrivalDate, p.ArrivalDate)
	out.MotherClub = coalesce(detailed.MotherClub, p.MotherClub)
	out.NativeCountryID = coalesce(detailed.NativeCountryID, p.NativeCountryID)
	out.NativeLeagueID = coalesce(detailed.NativeLeagueID, p.NativeLeagueID)
	out.NativeLeagueName = coalesce(detailed.NativeLeagueName, p.NativeLeagueName)
	out.MatchesCurrentTeam = coalesce(detailed.MatchesCurrentTeam, p.MatchesCurrentTeam)
	out.GoalsCurrentTeam = coalesce(detailed.GoalsCurrentTeam, p.GoalsCurrentTeam)
	out.AssistsCurrentTeam = coalesce(detailed.AssistsCurrentTeam, p.AssistsCurrentTeam)
	out.LastMatch = coalesce(detailed.LastMatch, p.LastMatch)

	// Players reported abroad sometimes come back without a current country.
	if out.CountryID == nil && out.NativeCountryID != nil {
		out.CountryID = out.NativeCountryID
	}

	return out
}

func coalesce[T any](detailed, basic *T) *T {
	if detailed != nil {
		return detailed
	}
	return basic
}
