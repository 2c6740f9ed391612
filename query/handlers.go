package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-chpp/core"
)

// GenerationReader resolves the generation a read should run against.
type GenerationReader interface {
	LatestCompleted(ctx context.Context) (core.Generation, error)
}

type LatestGenerationQuery struct {
	generations GenerationReader
}

func NewLatestGenerationQuery(generations GenerationReader) *LatestGenerationQuery {
	return &LatestGenerationQuery{generations: generations}
}

func (q *LatestGenerationQuery) Query(ctx context.Context, msg LatestGenerationMessage) (core.Generation, error) {
	if q == nil || q.generations == nil {
		return core.Generation{}, queryDependencyError("query: generation reader is required")
	}
	return q.generations.LatestCompleted(ctx)
}

type ListTeamsQuery struct {
	generations GenerationReader
	teams       core.TeamReader
}

func NewListTeamsQuery(generations GenerationReader, teams core.TeamReader) *ListTeamsQuery {
	return &ListTeamsQuery{generations: generations, teams: teams}
}

func (q *ListTeamsQuery) Query(ctx context.Context, msg ListTeamsMessage) ([]core.TeamSummary, error) {
	if q == nil || q.generations == nil || q.teams == nil {
		return nil, queryDependencyError("query: generation and team readers are required")
	}
	generationID, err := resolveGenerationID(ctx, q.generations, msg.GenerationID)
	if err != nil {
		return nil, err
	}
	return q.teams.ListTeamSummaries(ctx, generationID)
}

type GetTeamQuery struct {
	generations GenerationReader
	teams       core.TeamReader
}

func NewGetTeamQuery(generations GenerationReader, teams core.TeamReader) *GetTeamQuery {
	return &GetTeamQuery{generations: generations, teams: teams}
}

func (q *GetTeamQuery) Query(ctx context.Context, msg GetTeamMessage) (core.Team, error) {
	if q == nil || q.generations == nil || q.teams == nil {
		return core.Team{}, queryDependencyError("query: generation and team readers are required")
	}
	generationID, err := resolveGenerationID(ctx, q.generations, msg.GenerationID)
	if err != nil {
		return core.Team{}, err
	}
	return q.teams.GetTeam(ctx, generationID, msg.TeamID)
}

type ListPlayersQuery struct {
	generations GenerationReader
	players     core.PlayerReader
}

func NewListPlayersQuery(generations GenerationReader, players core.PlayerReader) *ListPlayersQuery {
	return &ListPlayersQuery{generations: generations, players: players}
}

func (q *ListPlayersQuery) Query(ctx context.Context, msg ListPlayersMessage) ([]core.Player, error) {
	if q == nil || q.generations == nil || q.players == nil {
		return nil, queryDependencyError("query: generation and player readers are required")
	}
	generationID, err := resolveGenerationID(ctx, q.generations, msg.GenerationID)
	if err != nil {
		return nil, err
	}
	return q.players.ListPlayersForTeam(ctx, generationID, msg.TeamID)
}

// resolveGenerationID pins a read to an explicit generation when the message
// names one, otherwise to the latest completed run.
func resolveGenerationID(ctx context.Context, generations GenerationReader, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id != "" {
		return id, nil
	}
	generation, err := generations.LatestCompleted(ctx)
	if err != nil {
		return "", err
	}
	return generation.ID, nil
}
