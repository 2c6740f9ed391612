package chpp

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// The gateway emits booleans as True/False and leaves optional numeric
// elements empty instead of omitting them, so every scalar that can be
// absent goes through a lenient wrapper type.

type xmlBool bool

func (b *xmlBool) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		*b = true
	case "false", "0", "":
		*b = false
	default:
		return fmt.Errorf("chpp: invalid boolean value %q", raw)
	}
	return nil
}

type xmlOptBool struct {
	Value *bool
}

func (b *xmlOptBool) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		v := true
		b.Value = &v
	case "false", "0":
		v := false
		b.Value = &v
	}
	return nil
}

type xmlOptInt struct {
	Value *int
}

func (i *xmlOptInt) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("chpp: invalid integer value %q", raw)
	}
	i.Value = &parsed
	return nil
}

type xmlOptInt64 struct {
	Value *int64
}

func (i *xmlOptInt64) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("chpp: invalid integer value %q", raw)
	}
	i.Value = &parsed
	return nil
}

type xmlOptFloat struct {
	Value *float64
}

func (f *xmlOptFloat) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("chpp: invalid float value %q", raw)
	}
	f.Value = &parsed
	return nil
}

type errorPayload struct {
	XMLName   xml.Name `xml:"HattrickData"`
	Error     string   `xml:"Error"`
	ErrorCode string   `xml:"ErrorCode"`
	ErrorGUID string   `xml:"ErrorGUID"`
	Request   string   `xml:"Request"`
}

type languagePayload struct {
	LanguageID   int64  `xml:"LanguageID"`
	LanguageName string `xml:"LanguageName"`
}

type userPayload struct {
	UserID            int64           `xml:"UserID"`
	Language          languagePayload `xml:"Language"`
	Name              string          `xml:"Name"`
	Loginname         string          `xml:"Loginname"`
	SupporterTier     string          `xml:"SupporterTier"`
	SignupDate        string          `xml:"SignupDate"`
	ActivationDate    string          `xml:"ActivationDate"`
	LastLoginDate     string          `xml:"LastLoginDate"`
	HasManagerLicense xmlBool         `xml:"HasManagerLicense"`
}

type arenaPayload struct {
	ArenaID   int64  `xml:"ArenaID"`
	ArenaName string `xml:"ArenaName"`
}

type leaguePayload struct {
	LeagueID   int64  `xml:"LeagueID"`
	LeagueName string `xml:"LeagueName"`
}

type countryPayload struct {
	CountryID   int64  `xml:"CountryID"`
	CountryName string `xml:"CountryName"`
}

type regionPayload struct {
	RegionID   int64  `xml:"RegionID"`
	RegionName string `xml:"RegionName"`
}

type trainerPayload struct {
	PlayerID xmlOptInt64 `xml:"PlayerID"`
}

type fanclubPayload struct {
	FanclubID   int64  `xml:"FanclubID"`
	FanclubName string `xml:"FanclubName"`
	FanclubSize int    `xml:"FanclubSize"`
}

type leagueLevelUnitPayload struct {
	LeagueLevelUnitID   int64  `xml:"LeagueLevelUnitID"`
	LeagueLevelUnitName string `xml:"LeagueLevelUnitName"`
	LeagueLevel         int    `xml:"LeagueLevel"`
}

type teamPayload struct {
	TeamID            string                  `xml:"TeamID"`
	TeamName          string                  `xml:"TeamName"`
	ShortTeamName     *string                 `xml:"ShortTeamName"`
	IsPrimaryClub     xmlOptBool              `xml:"IsPrimaryClub"`
	FoundedDate       *string                 `xml:"FoundedDate"`
	Arena             *arenaPayload           `xml:"Arena"`
	League            *leaguePayload          `xml:"League"`
	Country           *countryPayload         `xml:"Country"`
	Region            *regionPayload          `xml:"Region"`
	Trainer           *trainerPayload         `xml:"Trainer"`
	HomePage          *string                 `xml:"HomePage"`
	LeagueLevelUnit   *leagueLevelUnitPayload `xml:"LeagueLevelUnit"`
	Fanclub           *fanclubPayload         `xml:"Fanclub"`
	LogoURL           *string                 `xml:"LogoURL"`
	DressURI          *string                 `xml:"DressURI"`
	DressAlternateURI *string                 `xml:"DressAlternateURI"`
	TeamRank          xmlOptInt               `xml:"TeamRank"`
	YouthTeamID       xmlOptInt64             `xml:"YouthTeamID"`
	YouthTeamName     *string                 `xml:"YouthTeamName"`
	NumberOfVisits    xmlOptInt               `xml:"NumberOfVisits"`
	PlayerList        *playerListPayload      `xml:"PlayerList"`
}

// playerListPayload stays a pointer on teamPayload so an absent PlayerList
// element is distinguishable from an empty squad.
type playerListPayload struct {
	Players []playerPayload `xml:"Player"`
}

type playerSkillsPayload struct {
	StaminaSkill   int `xml:"StaminaSkill"`
	KeeperSkill    int `xml:"KeeperSkill"`
	PlaymakerSkill int `xml:"PlaymakerSkill"`
	ScorerSkill    int `xml:"ScorerSkill"`
	PassingSkill   int `xml:"PassingSkill"`
	WingerSkill    int `xml:"WingerSkill"`
	DefenderSkill  int `xml:"DefenderSkill"`
	SetPiecesSkill int `xml:"SetPiecesSkill"`
}

type lastMatchPayload struct {
	Date             string      `xml:"Date"`
	MatchID          int64       `xml:"MatchId"`
	PositionCode     int         `xml:"PositionCode"`
	PlayedMinutes    int         `xml:"PlayedMinutes"`
	Rating           xmlOptFloat `xml:"Rating"`
	RatingEndOfMatch xmlOptFloat `xml:"RatingEndOfMatch"`
}

type motherClubPayload struct {
	TeamID   int64  `xml:"TeamID"`
	TeamName string `xml:"TeamName"`
}

type playerPayload struct {
	PlayerID           int64                `xml:"PlayerID"`
	FirstName          string               `xml:"FirstName"`
	LastName           string               `xml:"LastName"`
	NickName           *string              `xml:"NickName"`
	PlayerNumber       xmlOptInt            `xml:"PlayerNumber"`
	Age                int                  `xml:"Age"`
	AgeDays            xmlOptInt            `xml:"AgeDays"`
	TSI                int                  `xml:"TSI"`
	PlayerForm         int                  `xml:"PlayerForm"`
	Statement          *string              `xml:"Statement"`
	Experience         int                  `xml:"Experience"`
	Loyalty            int                  `xml:"Loyalty"`
	ReferencePlayerID  xmlOptInt64          `xml:"ReferencePlayerID"`
	MotherClubBonus    xmlBool              `xml:"MotherClubBonus"`
	Leadership         int                  `xml:"Leadership"`
	Salary             int                  `xml:"Salary"`
	IsAbroad           xmlBool              `xml:"IsAbroad"`
	Agreeability       int                  `xml:"Agreeability"`
	Aggressiveness     int                  `xml:"Aggressiveness"`
	Honesty            int                  `xml:"Honesty"`
	LeagueGoals        xmlOptInt            `xml:"LeagueGoals"`
	CupGoals           xmlOptInt            `xml:"CupGoals"`
	FriendliesGoals    xmlOptInt            `xml:"FriendliesGoals"`
	CareerGoals        xmlOptInt            `xml:"CareerGoals"`
	CareerHattricks    xmlOptInt            `xml:"CareerHattricks"`
	CareerAssists      xmlOptInt            `xml:"CareerAssists"`
	Speciality         xmlOptInt            `xml:"Speciality"`
	TransferListed     xmlBool              `xml:"TransferListed"`
	NationalTeamID     xmlOptInt64          `xml:"NationalTeamID"`
	CountryID          xmlOptInt64          `xml:"CountryID"`
	Caps               xmlOptInt            `xml:"Caps"`
	CapsU20            xmlOptInt            `xml:"CapsU20"`
	Cards              xmlOptInt            `xml:"Cards"`
	InjuryLevel        xmlOptInt            `xml:"InjuryLevel"`
	Sticker            *string              `xml:"Sticker"`
	Skills             *playerSkillsPayload `xml:"PlayerSkills"`
	ArrivalDate        *string              `xml:"ArrivalDate"`
	PlayerCategoryID   xmlOptInt            `xml:"PlayerCategoryId"`
	MotherClub         *motherClubPayload   `xml:"MotherClub"`
	NativeCountryID    xmlOptInt64          `xml:"NativeCountryID"`
	NativeLeagueID     xmlOptInt64          `xml:"NativeLeagueID"`
	NativeLeagueName   *string              `xml:"NativeLeagueName"`
	MatchesCurrentTeam xmlOptInt            `xml:"MatchesCurrentTeam"`
	GoalsCurrentTeam   xmlOptInt            `xml:"GoalsCurrentTeam"`
	AssistsCurrentTeam xmlOptInt            `xml:"AssistsCurrentTeam"`
	LastMatch          *lastMatchPayload    `xml:"LastMatch"`
}

type teamDetailsPayload struct {
	XMLName xml.Name      `xml:"HattrickData"`
	User    userPayload   `xml:"User"`
	Teams   []teamPayload `xml:"Teams>Team"`
}

type playersPayload struct {
	XMLName xml.Name    `xml:"HattrickData"`
	Team    teamPayload `xml:"Team"`
}

type playerDetailsPayload struct {
	XMLName xml.Name      `xml:"HattrickData"`
	Player  playerPayload `xml:"Player"`
}

type worldCountryPayload struct {
	CountryID    xmlOptInt64 `xml:"CountryID"`
	CountryName  *string     `xml:"CountryName"`
	CurrencyName *string     `xml:"CurrencyName"`
	CurrencyRate *string     `xml:"CurrencyRate"`
	CountryCode  *string     `xml:"CountryCode"`
	DateFormat   *string     `xml:"DateFormat"`
	TimeFormat   *string     `xml:"TimeFormat"`
}

type worldLeaguePayload struct {
	LeagueID       int64               `xml:"LeagueID"`
	LeagueName     string              `xml:"LeagueName"`
	Country        worldCountryPayload `xml:"Country"`
	Season         xmlOptInt           `xml:"Season"`
	SeasonOffset   xmlOptInt           `xml:"SeasonOffset"`
	MatchRound     xmlOptInt           `xml:"MatchRound"`
	ShortName      *string             `xml:"ShortName"`
	Continent      *string             `xml:"Continent"`
	ZoneName       *string             `xml:"ZoneName"`
	EnglishName    *string             `xml:"EnglishName"`
	LanguageID     xmlOptInt64         `xml:"LanguageId"`
	LanguageName   *string             `xml:"LanguageName"`
	NationalTeamID xmlOptInt64         `xml:"NationalTeamId"`
	U20TeamID      xmlOptInt64         `xml:"U20TeamId"`
	ActiveTeams    xmlOptInt           `xml:"ActiveTeams"`
	ActiveUsers    xmlOptInt           `xml:"ActiveUsers"`
	NumberOfLevels xmlOptInt           `xml:"NumberOfLevels"`
}

type worldDetailsPayload struct {
	XMLName xml.Name             `xml:"HattrickData"`
	Leagues []worldLeaguePayload `xml:"LeagueList>League"`
}
