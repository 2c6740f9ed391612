package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// Logger is the structured logger used across the module.
type Logger = glog.Logger

// LoggerProvider resolves named loggers, one per component.
type LoggerProvider = glog.LoggerProvider

// CredentialSource mints the signing material for one outbound request.
// Every call returns a fresh nonce and timestamp.
type CredentialSource interface {
	Fresh(ctx context.Context) (SigningContext, error)
}

// TransportRequest is the wire-level description of one signed call.
type TransportRequest struct {
	Method  string
	URL     string
	Headers map[string]string
}

// TransportResponse is the raw result of one call before any decoding.
type TransportResponse struct {
	StatusCode int
	Body       []byte
}

// TransportAdapter executes a single HTTP exchange. Implementations do not
// retry; retry policy lives above the transport.
type TransportAdapter interface {
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// Client fetches typed CHPP resources. Implementations sign, send, retry
// and decode; callers only see domain values.
type Client interface {
	FetchTeamDetails(ctx context.Context) (TeamDetails, error)
	FetchWorldDetails(ctx context.Context) (WorldDetails, error)
	FetchPlayers(ctx context.Context, teamID int64) (Roster, error)
	FetchPlayerDetails(ctx context.Context, playerID int64) (Player, error)
}

// Handshake drives the interactive three-legged authorization flow.
type Handshake interface {
	ObtainRequestToken(ctx context.Context) (RequestToken, string, error)
	ExchangeVerificationCode(ctx context.Context, requestToken RequestToken, code string) (AccessToken, error)
}

// ProgressFunc receives checkpoint notifications during a sync run. The
// fraction is monotonically non-decreasing within one run.
type ProgressFunc func(fraction float64, stage string)

// Secret store keys for the durable access credential pair.
const (
	SecretKeyAccessToken  = "access_token"
	SecretKeyAccessSecret = "access_secret"
)

// SecretStore persists small named secrets. Get returns ErrMissingCredentials
// when the name has never been stored. Delete is a no-op for names that were
// never stored.
type SecretStore interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

// GenerationStore manages sync run records.
type GenerationStore interface {
	Create(ctx context.Context, gen Generation) error
	Complete(ctx context.Context, id string, status GenerationStatus) error
	LatestCompleted(ctx context.Context) (Generation, error)
}

// TeamStore persists the authenticated user and their teams for a run.
type TeamStore interface {
	SaveTeamDetails(ctx context.Context, generationID string, details TeamDetails) error
}

// WorldStore persists the global reference data set for a run.
type WorldStore interface {
	SaveWorldDetails(ctx context.Context, generationID string, details WorldDetails) error
}

// PlayerStore persists merged player records for a run.
type PlayerStore interface {
	SavePlayers(ctx context.Context, generationID string, teamID int64, players []Player) error
}

// TeamSummary is the list view of a stored team.
type TeamSummary struct {
	ID   int64
	Name string
}

// TeamReader serves stored team data scoped to one generation.
type TeamReader interface {
	ListTeamSummaries(ctx context.Context, generationID string) ([]TeamSummary, error)
	GetTeam(ctx context.Context, generationID string, teamID int64) (Team, error)
}

// PlayerReader serves stored player data scoped to one generation.
type PlayerReader interface {
	ListPlayersForTeam(ctx context.Context, generationID string, teamID int64) ([]Player, error)
}
