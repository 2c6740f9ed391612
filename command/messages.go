package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-chpp/core"
)

const (
	TypeStartSync         = "chpp.command.sync.start"
	TypeBeginHandshake    = "chpp.command.handshake.begin"
	TypeCompleteHandshake = "chpp.command.handshake.complete"
)

// StartSyncMessage triggers one full download run using the stored access
// credentials.
type StartSyncMessage struct{}

func (StartSyncMessage) Type() string { return TypeStartSync }

func (StartSyncMessage) Validate() error { return nil }

// BeginHandshakeMessage starts the interactive authorization flow. The
// resulting authorize URL has to be opened by the user.
type BeginHandshakeMessage struct{}

func (BeginHandshakeMessage) Type() string { return TypeBeginHandshake }

func (BeginHandshakeMessage) Validate() error { return nil }

// CompleteHandshakeMessage exchanges the verification code the user copied
// from the authorize page for a durable access token.
type CompleteHandshakeMessage struct {
	RequestToken     core.RequestToken
	VerificationCode string
}

func (CompleteHandshakeMessage) Type() string { return TypeCompleteHandshake }

func (m CompleteHandshakeMessage) Validate() error {
	if err := m.RequestToken.Validate(); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	if strings.TrimSpace(m.VerificationCode) == "" {
		return fmt.Errorf("command: verification code is required")
	}
	return nil
}

// StartSyncResult reports how a triggered run ended. CredentialsFound is
// false when no access token pair has been stored yet; that outcome is not
// an error.
type StartSyncResult struct {
	CredentialsFound bool
}

// BeginHandshakeResult carries the request token the caller must hold on to
// for the completing leg, plus the URL the user authorizes at.
type BeginHandshakeResult struct {
	RequestToken core.RequestToken
	AuthorizeURL string
}

// CompleteHandshakeResult carries the stored access token pair.
type CompleteHandshakeResult struct {
	AccessToken core.AccessToken
}
