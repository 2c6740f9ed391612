package command

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-chpp/core"
	chppsync "github.com/goliatone/go-chpp/sync"
	gocmd "github.com/goliatone/go-command"
)

type stubSyncService struct {
	found bool
	err   error
	calls int
}

func (s *stubSyncService) RunWithStoredCredentials(_ context.Context) (bool, error) {
	s.calls++
	return s.found, s.err
}

type stubHandshake struct {
	requestToken core.RequestToken
	authorizeURL string
	accessToken  core.AccessToken
	obtainErr    error
	exchangeErr  error

	gotRequestToken core.RequestToken
	gotCode         string
}

func (s *stubHandshake) ObtainRequestToken(_ context.Context) (core.RequestToken, string, error) {
	if s.obtainErr != nil {
		return core.RequestToken{}, "", s.obtainErr
	}
	return s.requestToken, s.authorizeURL, nil
}

func (s *stubHandshake) ExchangeVerificationCode(_ context.Context, requestToken core.RequestToken, code string) (core.AccessToken, error) {
	s.gotRequestToken = requestToken
	s.gotCode = code
	if s.exchangeErr != nil {
		return core.AccessToken{}, s.exchangeErr
	}
	return s.accessToken, nil
}

func TestStartSyncCommand_StoresOutcome(t *testing.T) {
	svc := &stubSyncService{found: true}
	cmd := NewStartSyncCommand(svc)

	collector := gocmd.NewResult[StartSyncResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, StartSyncMessage{}); err != nil {
		t.Fatalf("execute start sync: %v", err)
	}
	if svc.calls != 1 {
		t.Fatalf("expected 1 sync run, got %d", svc.calls)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if !result.CredentialsFound {
		t.Fatalf("expected credentials found outcome")
	}
}

func TestStartSyncCommand_ReportsMissingCredentialsWithoutError(t *testing.T) {
	svc := &stubSyncService{found: false}
	cmd := NewStartSyncCommand(svc)

	collector := gocmd.NewResult[StartSyncResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, StartSyncMessage{}); err != nil {
		t.Fatalf("execute start sync: %v", err)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.CredentialsFound {
		t.Fatalf("expected credentials missing outcome")
	}
}

func TestStartSyncCommand_PropagatesRunError(t *testing.T) {
	runErr := errors.New("fetch failed")
	svc := &stubSyncService{err: runErr}
	cmd := NewStartSyncCommand(svc)

	if err := cmd.Execute(context.Background(), StartSyncMessage{}); !errors.Is(err, runErr) {
		t.Fatalf("expected run error, got %v", err)
	}
}

func TestBeginHandshakeCommand_StoresTokenAndURL(t *testing.T) {
	handshake := &stubHandshake{
		requestToken: core.RequestToken{Token: "rt", Secret: "rs"},
		authorizeURL: "https://chpp.hattrick.org/oauth/authorize.aspx?oauth_token=rt&scope=set_matchorder",
	}
	cmd := NewBeginHandshakeCommand(handshake)

	collector := gocmd.NewResult[BeginHandshakeResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, BeginHandshakeMessage{}); err != nil {
		t.Fatalf("execute begin handshake: %v", err)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.RequestToken.Token != "rt" || result.RequestToken.Secret != "rs" {
		t.Fatalf("unexpected request token: %#v", result.RequestToken)
	}
	if result.AuthorizeURL != handshake.authorizeURL {
		t.Fatalf("unexpected authorize url: %q", result.AuthorizeURL)
	}
}

func TestCompleteHandshakeCommand_ExchangesAndPersists(t *testing.T) {
	handshake := &stubHandshake{
		accessToken: core.AccessToken{Token: "at", Secret: "as"},
	}
	secrets := chppsync.NewMemorySecretStore()
	cmd := NewCompleteHandshakeCommand(handshake, secrets)

	collector := gocmd.NewResult[CompleteHandshakeResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	msg := CompleteHandshakeMessage{
		RequestToken:     core.RequestToken{Token: "rt", Secret: "rs"},
		VerificationCode: "1234",
	}
	if err := cmd.Execute(ctx, msg); err != nil {
		t.Fatalf("execute complete handshake: %v", err)
	}
	if handshake.gotCode != "1234" {
		t.Fatalf("expected verification code forwarded, got %q", handshake.gotCode)
	}
	if handshake.gotRequestToken.Token != "rt" {
		t.Fatalf("expected request token forwarded, got %#v", handshake.gotRequestToken)
	}

	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.AccessToken.Token != "at" {
		t.Fatalf("unexpected access token: %#v", result.AccessToken)
	}

	stored, err := secrets.Get(ctx, core.SecretKeyAccessToken)
	if err != nil {
		t.Fatalf("load stored token: %v", err)
	}
	if stored != "at" {
		t.Fatalf("expected stored token at, got %q", stored)
	}
	storedSecret, err := secrets.Get(ctx, core.SecretKeyAccessSecret)
	if err != nil {
		t.Fatalf("load stored secret: %v", err)
	}
	if storedSecret != "as" {
		t.Fatalf("expected stored secret as, got %q", storedSecret)
	}
}

func TestCompleteHandshakeMessage_Validate(t *testing.T) {
	valid := CompleteHandshakeMessage{
		RequestToken:     core.RequestToken{Token: "rt", Secret: "rs"},
		VerificationCode: "1234",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}

	missingToken := CompleteHandshakeMessage{VerificationCode: "1234"}
	if err := missingToken.Validate(); err == nil {
		t.Fatalf("expected request token validation error")
	}

	missingCode := CompleteHandshakeMessage{
		RequestToken: core.RequestToken{Token: "rt", Secret: "rs"},
	}
	if err := missingCode.Validate(); err == nil {
		t.Fatalf("expected verification code validation error")
	}
}

func TestCommands_RequireDependencies(t *testing.T) {
	if err := (&StartSyncCommand{}).Execute(context.Background(), StartSyncMessage{}); err == nil {
		t.Fatalf("expected dependency error for sync command")
	}
	if err := (&BeginHandshakeCommand{}).Execute(context.Background(), BeginHandshakeMessage{}); err == nil {
		t.Fatalf("expected dependency error for begin handshake command")
	}
	if err := (&CompleteHandshakeCommand{}).Execute(context.Background(), CompleteHandshakeMessage{}); err == nil {
		t.Fatalf("expected dependency error for complete handshake command")
	}
}
