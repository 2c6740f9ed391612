package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-chpp/core"
)

// TokenSource mints signing contexts from a fixed credential pair. It backs
// the data client once the handshake has produced an access token.
type TokenSource struct {
	consumer core.ConsumerCredentials
	token    core.AccessToken
	signer   *Signer
}

func NewTokenSource(consumer core.ConsumerCredentials, token core.AccessToken, signer *Signer) *TokenSource {
	if signer == nil {
		signer = NewSigner()
	}
	return &TokenSource{consumer: consumer, token: token, signer: signer}
}

func (s *TokenSource) Fresh(_ context.Context) (core.SigningContext, error) {
	if err := s.consumer.Validate(); err != nil {
		return core.SigningContext{}, core.NewAuthError(err.Error())
	}
	if s.token.IsZero() {
		return core.SigningContext{}, core.NewAuthError("auth: access token is required for signed requests")
	}
	return s.signer.FreshContext(s.consumer, s.token), nil
}

// StoredTokenSource loads the access credential pair from a secret store on
// every mint, so a completed handshake takes effect without a restart.
type StoredTokenSource struct {
	consumer core.ConsumerCredentials
	secrets  core.SecretStore
	signer   *Signer
}

func NewStoredTokenSource(consumer core.ConsumerCredentials, secrets core.SecretStore, signer *Signer) *StoredTokenSource {
	if signer == nil {
		signer = NewSigner()
	}
	return &StoredTokenSource{consumer: consumer, secrets: secrets, signer: signer}
}

func (s *StoredTokenSource) Fresh(ctx context.Context) (core.SigningContext, error) {
	if err := s.consumer.Validate(); err != nil {
		return core.SigningContext{}, core.NewAuthError(err.Error())
	}
	token, err := s.secrets.Get(ctx, core.SecretKeyAccessToken)
	if err != nil {
		return core.SigningContext{}, err
	}
	secret, err := s.secrets.Get(ctx, core.SecretKeyAccessSecret)
	if err != nil {
		return core.SigningContext{}, err
	}
	access := core.AccessToken{
		Token:  strings.TrimSpace(token),
		Secret: strings.TrimSpace(secret),
	}
	if access.IsZero() {
		return core.SigningContext{}, goerrors.Wrap(core.ErrMissingCredentials, goerrors.CategoryAuth, "auth: stored access token is empty").
			WithTextCode(core.ErrorCodeAuth)
	}
	return s.signer.FreshContext(s.consumer, access), nil
}

var _ core.CredentialSource = (*TokenSource)(nil)
var _ core.CredentialSource = (*StoredTokenSource)(nil)
