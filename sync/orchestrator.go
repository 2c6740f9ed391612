package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"

	"github.com/goliatone/go-chpp/core"
)

// Stores bundles the persistence gateways one sync run writes through.
type Stores struct {
	Generations core.GenerationStore
	Teams       core.TeamStore
	Worlds      core.WorldStore
	Players     core.PlayerStore
}

// Orchestrator drives a full data sync: one generation record scopes the
// run, and readers only ever trust the latest completed generation. A run
// that fails mid-flight leaves its generation in progress, which readers
// ignore.
type Orchestrator struct {
	Client  core.Client
	Stores  Stores
	Secrets core.SecretStore
	Logger  core.Logger
	Now     func() time.Time
}

func NewOrchestrator(client core.Client, stores Stores, secrets core.SecretStore, logger core.Logger) *Orchestrator {
	return &Orchestrator{
		Client:  client,
		Stores:  stores,
		Secrets: secrets,
		Logger:  glog.Ensure(logger),
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (o *Orchestrator) now() time.Time {
	if o != nil && o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

func (o *Orchestrator) validate() error {
	if o == nil || o.Client == nil {
		return fmt.Errorf("sync: orchestrator requires a client")
	}
	if o.Stores.Generations == nil || o.Stores.Teams == nil || o.Stores.Worlds == nil || o.Stores.Players == nil {
		return fmt.Errorf("sync: orchestrator requires generation, team, world and player stores")
	}
	return nil
}

// Run executes the full pipeline and reports progress at fixed checkpoints.
// The fraction passed to progress never decreases within one run.
func (o *Orchestrator) Run(ctx context.Context, progress core.ProgressFunc) error {
	if err := o.validate(); err != nil {
		return err
	}
	if progress == nil {
		progress = func(float64, string) {}
	}
	logger := glog.Ensure(o.Logger)

	progress(0, "Checking credentials...")

	progress(0.05, "Creating download record...")
	generation := core.Generation{
		ID:        uuid.NewString(),
		Timestamp: o.now(),
		Status:    core.GenerationStatusInProgress,
	}
	if err := o.Stores.Generations.Create(ctx, generation); err != nil {
		return core.NewStorageError(err, "sync: create generation record")
	}

	progress(0.1, "Fetching user data...")
	details, err := o.Client.FetchTeamDetails(ctx)
	if err != nil {
		return err
	}
	logger.Info("fetched team details",
		"user", details.User.LoginName,
		"teams", len(details.Teams),
	)
	if err := o.Stores.Teams.SaveTeamDetails(ctx, generation.ID, details); err != nil {
		return core.NewStorageError(err, "sync: save team details")
	}
	teamID := details.PrimaryTeamID()

	progress(0.3, "Fetching world details (leagues, currency)...")
	world, err := o.Client.FetchWorldDetails(ctx)
	if err != nil {
		return err
	}
	logger.Info("fetched world details", "leagues", len(world.Leagues))
	if err := o.Stores.Worlds.SaveWorldDetails(ctx, generation.ID, world); err != nil {
		return core.NewStorageError(err, "sync: save world details")
	}

	progress(0.6, "Fetching players...")
	if err := o.syncPlayers(ctx, generation.ID, teamID); err != nil {
		return err
	}

	progress(0.9, "Finalizing download...")
	if err := o.Stores.Generations.Complete(ctx, generation.ID, core.GenerationStatusCompleted); err != nil {
		return core.NewStorageError(err, "sync: finalize generation record")
	}

	progress(1.0, "Done.")
	logger.Info("sync completed", "generation_id", generation.ID)
	return nil
}

// syncPlayers fetches the roster, enriches every player with the detailed
// view, and persists the merged records. A failed detail fetch downgrades
// that one player to the basic view instead of failing the run.
func (o *Orchestrator) syncPlayers(ctx context.Context, generationID string, teamID int64) error {
	logger := glog.Ensure(o.Logger)

	roster, err := o.Client.FetchPlayers(ctx, teamID)
	if err != nil {
		return err
	}
	logger.Info("fetched roster", "team_id", roster.TeamID, "players", len(roster.Players))

	merged := make([]core.Player, 0, len(roster.Players))
	for _, basic := range roster.Players {
		detailed, err := o.Client.FetchPlayerDetails(ctx, basic.ID)
		if err != nil {
			logger.Warn("player detail fetch failed, keeping basic record",
				"player_id", basic.ID,
				"error", err.Error(),
			)
			merged = append(merged, basic.Merge(nil))
			continue
		}
		merged = append(merged, basic.Merge(&detailed))
	}

	if err := o.Stores.Players.SavePlayers(ctx, generationID, roster.TeamID, merged); err != nil {
		return core.NewStorageError(err, "sync: save players")
	}
	return nil
}

// RunWithStoredCredentials runs the pipeline only when a stored access
// credential pair exists. The boolean distinguishes "nothing to do" from a
// completed run; callers trigger the interactive handshake when it is false.
func (o *Orchestrator) RunWithStoredCredentials(ctx context.Context) (bool, error) {
	if err := o.validate(); err != nil {
		return false, err
	}
	if o.Secrets == nil {
		return false, fmt.Errorf("sync: orchestrator requires a secret store")
	}
	logger := glog.Ensure(o.Logger)

	if _, err := o.Secrets.Get(ctx, core.SecretKeyAccessToken); err != nil {
		if errors.Is(err, core.ErrMissingCredentials) {
			return false, nil
		}
		return false, err
	}
	if _, err := o.Secrets.Get(ctx, core.SecretKeyAccessSecret); err != nil {
		if errors.Is(err, core.ErrMissingCredentials) {
			return false, nil
		}
		return false, err
	}

	err := o.Run(ctx, func(fraction float64, stage string) {
		logger.Debug("background sync progress",
			"percent", int(fraction*100),
			"stage", stage,
		)
	})
	if err != nil {
		if errors.Is(err, core.ErrMissingCredentials) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
