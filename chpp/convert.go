package chpp

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-chpp/core"
)

func (p userPayload) toDomain() core.User {
	return core.User{
		ID:                p.UserID,
		Name:              strings.TrimSpace(p.Name),
		LoginName:         strings.TrimSpace(p.Loginname),
		SupporterTier:     strings.TrimSpace(p.SupporterTier),
		SignupDate:        strings.TrimSpace(p.SignupDate),
		ActivationDate:    strings.TrimSpace(p.ActivationDate),
		LastLoginDate:     strings.TrimSpace(p.LastLoginDate),
		HasManagerLicense: bool(p.HasManagerLicense),
		Language: core.Language{
			ID:   p.Language.LanguageID,
			Name: strings.TrimSpace(p.Language.LanguageName),
		},
	}
}

func (p teamPayload) toDomain() (core.Team, error) {
	teamID, err := strconv.ParseInt(strings.TrimSpace(p.TeamID), 10, 64)
	if err != nil {
		return core.Team{}, err
	}

	team := core.Team{
		ID:                teamID,
		Name:              strings.TrimSpace(p.TeamName),
		ShortName:         p.ShortTeamName,
		IsPrimaryClub:     p.IsPrimaryClub.Value,
		FoundedDate:       p.FoundedDate,
		HomePage:          p.HomePage,
		LogoURL:           p.LogoURL,
		DressURI:          p.DressURI,
		DressAlternateURI: p.DressAlternateURI,
		TeamRank:          p.TeamRank.Value,
		YouthTeamID:       p.YouthTeamID.Value,
		YouthTeamName:     p.YouthTeamName,
		NumberOfVisits:    p.NumberOfVisits.Value,
	}
	if p.Arena != nil {
		team.Arena = &core.Arena{ID: p.Arena.ArenaID, Name: strings.TrimSpace(p.Arena.ArenaName)}
	}
	if p.League != nil {
		team.League = &core.LeagueRef{ID: p.League.LeagueID, Name: strings.TrimSpace(p.League.LeagueName)}
	}
	if p.Country != nil {
		team.Country = &core.CountryRef{ID: p.Country.CountryID, Name: strings.TrimSpace(p.Country.CountryName)}
	}
	if p.Region != nil {
		team.Region = &core.Region{ID: p.Region.RegionID, Name: strings.TrimSpace(p.Region.RegionName)}
	}
	if p.Trainer != nil {
		team.TrainerID = p.Trainer.PlayerID.Value
	}
	if p.LeagueLevelUnit != nil {
		team.LeagueLevelUnit = &core.LeagueLevelUnit{
			ID:    p.LeagueLevelUnit.LeagueLevelUnitID,
			Name:  strings.TrimSpace(p.LeagueLevelUnit.LeagueLevelUnitName),
			Level: p.LeagueLevelUnit.LeagueLevel,
		}
	}
	if p.Fanclub != nil {
		team.Fanclub = &core.Fanclub{
			ID:   p.Fanclub.FanclubID,
			Name: strings.TrimSpace(p.Fanclub.FanclubName),
			Size: p.Fanclub.FanclubSize,
		}
	}
	return team, nil
}

func (p playerPayload) toDomain() core.Player {
	player := core.Player{
		ID:                 p.PlayerID,
		FirstName:          strings.TrimSpace(p.FirstName),
		LastName:           strings.TrimSpace(p.LastName),
		NickName:           p.NickName,
		Age:                p.Age,
		AgeDays:            p.AgeDays.Value,
		TSI:                p.TSI,
		Form:               p.PlayerForm,
		Statement:          p.Statement,
		Experience:         p.Experience,
		Loyalty:            p.Loyalty,
		ReferencePlayerID:  p.ReferencePlayerID.Value,
		MotherClubBonus:    bool(p.MotherClubBonus),
		Leadership:         p.Leadership,
		Salary:             p.Salary,
		IsAbroad:           bool(p.IsAbroad),
		Agreeability:       p.Agreeability,
		Aggressiveness:     p.Aggressiveness,
		Honesty:            p.Honesty,
		LeagueGoals:        p.LeagueGoals.Value,
		CupGoals:           p.CupGoals.Value,
		FriendliesGoals:    p.FriendliesGoals.Value,
		CareerGoals:        p.CareerGoals.Value,
		CareerHattricks:    p.CareerHattricks.Value,
		CareerAssists:      p.CareerAssists.Value,
		Specialty:          p.Speciality.Value,
		TransferListed:     bool(p.TransferListed),
		NationalTeamID:     p.NationalTeamID.Value,
		CountryID:          p.CountryID.Value,
		Caps:               p.Caps.Value,
		CapsU20:            p.CapsU20.Value,
		Cards:              p.Cards.Value,
		InjuryLevel:        p.InjuryLevel.Value,
		Sticker:            p.Sticker,
		ArrivalDate:        p.ArrivalDate,
		CategoryID:         p.PlayerCategoryID.Value,
		NativeCountryID:    p.NativeCountryID.Value,
		NativeLeagueID:     p.NativeLeagueID.Value,
		NativeLeagueName:   p.NativeLeagueName,
		MatchesCurrentTeam: p.MatchesCurrentTeam.Value,
		GoalsCurrentTeam:   p.GoalsCurrentTeam.Value,
		AssistsCurrentTeam: p.AssistsCurrentTeam.Value,
	}

	// Number 100 means the player has no shirt number.
	if n := p.PlayerNumber.Value; n != nil && *n != 100 {
		player.ShirtNumber = n
	}

	if p.Skills != nil {
		player.Skills = &core.PlayerSkills{
			Stamina:   p.Skills.StaminaSkill,
			Keeper:    p.Skills.KeeperSkill,
			Playmaker: p.Skills.PlaymakerSkill,
			Scorer:    p.Skills.ScorerSkill,
			Passing:   p.Skills.PassingSkill,
			Winger:    p.Skills.WingerSkill,
			Defender:  p.Skills.DefenderSkill,
			SetPieces: p.Skills.SetPiecesSkill,
		}
	}
	if p.MotherClub != nil {
		player.MotherClub = &core.MotherClub{
			TeamID: p.MotherClub.TeamID,
			Name:   strings.TrimSpace(p.MotherClub.TeamName),
		}
	}
	if p.LastMatch != nil {
		player.LastMatch = &core.LastMatch{
			Date:             strings.TrimSpace(p.LastMatch.Date),
			MatchID:          p.LastMatch.MatchID,
			PositionCode:     p.LastMatch.PositionCode,
			PlayedMinutes:    p.LastMatch.PlayedMinutes,
			Rating:           p.LastMatch.Rating.Value,
			RatingEndOfMatch: p.LastMatch.RatingEndOfMatch.Value,
		}
	}
	return player
}

func (p worldLeaguePayload) toDomain() core.WorldLeague {
	return core.WorldLeague{
		ID:   p.LeagueID,
		Name: strings.TrimSpace(p.LeagueName),
		Country: core.WorldCountry{
			ID:           p.Country.CountryID.Value,
			Name:         p.Country.CountryName,
			CurrencyName: p.Country.CurrencyName,
			CurrencyRate: p.Country.CurrencyRate,
			Code:         p.Country.CountryCode,
			DateFormat:   p.Country.DateFormat,
			TimeFormat:   p.Country.TimeFormat,
		},
		Season:         p.Season.Value,
		SeasonOffset:   p.SeasonOffset.Value,
		MatchRound:     p.MatchRound.Value,
		ShortName:      p.ShortName,
		Continent:      p.Continent,
		ZoneName:       p.ZoneName,
		EnglishName:    p.EnglishName,
		LanguageID:     p.LanguageID.Value,
		LanguageName:   p.LanguageName,
		NationalTeamID: p.NationalTeamID.Value,
		U20TeamID:      p.U20TeamID.Value,
		ActiveTeams:    p.ActiveTeams.Value,
		ActiveUsers:    p.ActiveUsers.Value,
		NumberOfLevels: p.NumberOfLevels.Value,
	}
}
