package query

import (
	"github.com/goliatone/go-chpp/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[LatestGenerationMessage, core.Generation] = (*LatestGenerationQuery)(nil)
	_ gocmd.Querier[ListTeamsMessage, []core.TeamSummary]     = (*ListTeamsQuery)(nil)
	_ gocmd.Querier[GetTeamMessage, core.Team]                = (*GetTeamQuery)(nil)
	_ gocmd.Querier[ListPlayersMessage, []core.Player]        = (*ListPlayersQuery)(nil)
)
