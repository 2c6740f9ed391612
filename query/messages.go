package query

import (
	"fmt"
)

const (
	TypeLatestGeneration = "chpp.query.generation.latest"
	TypeListTeams        = "chpp.query.team.list"
	TypeGetTeam          = "chpp.query.team.get"
	TypeListPlayers      = "chpp.query.player.list"
)

// LatestGenerationMessage asks for the most recent completed download run.
type LatestGenerationMessage struct{}

func (LatestGenerationMessage) Type() string { return TypeLatestGeneration }

func (LatestGenerationMessage) Validate() error { return nil }

// ListTeamsMessage lists stored teams. An empty GenerationID reads from the
// latest completed run.
type ListTeamsMessage struct {
	GenerationID string
}

func (ListTeamsMessage) Type() string { return TypeListTeams }

func (ListTeamsMessage) Validate() error { return nil }

// GetTeamMessage loads one stored team. An empty GenerationID reads from the
// latest completed run.
type GetTeamMessage struct {
	GenerationID string
	TeamID       int64
}

func (GetTeamMessage) Type() string { return TypeGetTeam }

func (m GetTeamMessage) Validate() error {
	if m.TeamID <= 0 {
		return fmt.Errorf("query: team id is required")
	}
	return nil
}

// ListPlayersMessage lists the stored squad of one team. An empty
// GenerationID reads from the latest completed run.
type ListPlayersMessage struct {
	GenerationID string
	TeamID       int64
}

func (ListPlayersMessage) Type() string { return TypeListPlayers }

func (m ListPlayersMessage) Validate() error {
	if m.TeamID <= 0 {
		return fmt.Errorf("query: team id is required")
	}
	return nil
}
