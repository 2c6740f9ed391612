package command

import (
	"context"

	"github.com/goliatone/go-chpp/core"
	chppsync "github.com/goliatone/go-chpp/sync"
	gocmd "github.com/goliatone/go-command"
)

// SyncService runs one full download against the gateway.
type SyncService interface {
	RunWithStoredCredentials(ctx context.Context) (bool, error)
}

type StartSyncCommand struct {
	service SyncService
}

func NewStartSyncCommand(service SyncService) *StartSyncCommand {
	return &StartSyncCommand{service: service}
}

func (c *StartSyncCommand) Execute(ctx context.Context, _ StartSyncMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: sync service is required")
	}
	found, err := c.service.RunWithStoredCredentials(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, StartSyncResult{CredentialsFound: found})
	return nil
}

type BeginHandshakeCommand struct {
	handshake core.Handshake
}

func NewBeginHandshakeCommand(handshake core.Handshake) *BeginHandshakeCommand {
	return &BeginHandshakeCommand{handshake: handshake}
}

func (c *BeginHandshakeCommand) Execute(ctx context.Context, _ BeginHandshakeMessage) error {
	if c == nil || c.handshake == nil {
		return commandDependencyError("command: handshake service is required")
	}
	token, authorizeURL, err := c.handshake.ObtainRequestToken(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, BeginHandshakeResult{
		RequestToken: token,
		AuthorizeURL: authorizeURL,
	})
	return nil
}

type CompleteHandshakeCommand struct {
	handshake core.Handshake
	secrets   core.SecretStore
}

func NewCompleteHandshakeCommand(handshake core.Handshake, secrets core.SecretStore) *CompleteHandshakeCommand {
	return &CompleteHandshakeCommand{handshake: handshake, secrets: secrets}
}

func (c *CompleteHandshakeCommand) Execute(ctx context.Context, msg CompleteHandshakeMessage) error {
	if c == nil || c.handshake == nil || c.secrets == nil {
		return commandDependencyError("command: handshake service and secret store are required")
	}
	access, err := c.handshake.ExchangeVerificationCode(ctx, msg.RequestToken, msg.VerificationCode)
	if err != nil {
		return err
	}
	if err := chppsync.SaveAccessToken(ctx, c.secrets, access); err != nil {
		return err
	}
	storeResult(ctx, CompleteHandshakeResult{AccessToken: access})
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
