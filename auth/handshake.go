package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-chpp/core"
)

// Handshake runs the interactive three-legged authorization flow against the
// gateway. It never retries: every leg either succeeds or needs the user to
// start over.
type Handshake struct {
	config    core.Config
	consumer  core.ConsumerCredentials
	transport core.TransportAdapter
	signer    *Signer
	logger    core.Logger
}

func NewHandshake(cfg core.Config, consumer core.ConsumerCredentials, transport core.TransportAdapter, signer *Signer, logger core.Logger) *Handshake {
	if signer == nil {
		signer = NewSigner()
	}
	return &Handshake{
		config:    cfg,
		consumer:  consumer,
		transport: transport,
		signer:    signer,
		logger:    glog.Ensure(logger),
	}
}

// ObtainRequestToken performs the first leg and returns the short-lived
// request token together with the URL the user must open to authorize it.
func (h *Handshake) ObtainRequestToken(ctx context.Context) (core.RequestToken, string, error) {
	if err := h.consumer.Validate(); err != nil {
		return core.RequestToken{}, "", core.NewAuthError(err.Error())
	}

	endpoint := h.config.Endpoints.BaseURL + h.config.Endpoints.RequestTokenPath
	sc := h.signer.FreshContext(h.consumer, core.AccessToken{})
	extra := map[string]string{"oauth_callback": h.config.OAuth.Callback}

	values, err := h.signedTokenRequest(ctx, endpoint, sc, extra)
	if err != nil {
		return core.RequestToken{}, "", err
	}

	token := core.RequestToken{
		Token:  values.Get("oauth_token"),
		Secret: values.Get("oauth_token_secret"),
	}
	if err := token.Validate(); err != nil {
		return core.RequestToken{}, "", core.NewAuthError("auth: request token response is missing token fields")
	}

	authorizeURL := fmt.Sprintf("%s%s?oauth_token=%s&scope=%s",
		h.config.Endpoints.BaseURL,
		h.config.Endpoints.AuthorizePath,
		url.QueryEscape(token.Token),
		url.QueryEscape(h.config.OAuth.Scope),
	)

	h.logger.Info("request token obtained", "token", token.Token)
	return token, authorizeURL, nil
}

// ExchangeVerificationCode performs the final leg, trading the authorized
// request token and verification code for a permanent access token.
func (h *Handshake) ExchangeVerificationCode(ctx context.Context, requestToken core.RequestToken, code string) (core.AccessToken, error) {
	if err := h.consumer.Validate(); err != nil {
		return core.AccessToken{}, core.NewAuthError(err.Error())
	}
	if err := requestToken.Validate(); err != nil {
		return core.AccessToken{}, core.NewAuthError(err.Error())
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return core.AccessToken{}, core.NewAuthError("auth: verification code is required")
	}

	endpoint := h.config.Endpoints.BaseURL + h.config.Endpoints.AccessTokenPath
	sc := h.signer.FreshContext(h.consumer, core.AccessToken{
		Token:  requestToken.Token,
		Secret: requestToken.Secret,
	})
	extra := map[string]string{"oauth_verifier": code}

	values, err := h.signedTokenRequest(ctx, endpoint, sc, extra)
	if err != nil {
		return core.AccessToken{}, err
	}

	access := core.AccessToken{
		Token:  values.Get("oauth_token"),
		Secret: values.Get("oauth_token_secret"),
	}
	if access.IsZero() || access.Token == "" || access.Secret == "" {
		return core.AccessToken{}, core.NewAuthError("auth: access token response is missing token fields")
	}

	h.logger.Info("access token obtained")
	return access, nil
}

func (h *Handshake) signedTokenRequest(ctx context.Context, endpoint string, sc core.SigningContext, extraOAuth map[string]string) (url.Values, error) {
	header := h.signer.AuthorizationHeader(sc, "POST", endpoint, nil, extraOAuth)

	resp, err := h.transport.Do(ctx, core.TransportRequest{
		Method:  "POST",
		URL:     endpoint,
		Headers: RequestHeaders(header, h.config.UserAgent),
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, core.NewAuthError(fmt.Sprintf("auth: token endpoint returned status %d", resp.StatusCode))
	}

	// Failure pages come back as HTML with a 200 status, so unparsable
	// bodies are treated as authorization failures.
	body := strings.TrimSpace(string(resp.Body))
	values, parseErr := url.ParseQuery(body)
	if parseErr != nil || values.Get("oauth_token") == "" {
		return nil, core.NewAuthError("auth: token endpoint response could not be parsed")
	}
	return values, nil
}

// RequestHeaders is the header set every signed call carries. The gateway is
// sensitive to the legacy Accept value; do not modernize it.
func RequestHeaders(authorization, userAgent string) map[string]string {
	return map[string]string{
		"Authorization":   authorization,
		"Content-Length":  "0",
		"User-Agent":      userAgent,
		"Accept-Language": "en",
		"Accept":          "image/gif, image/x-xbitmap, image/jpeg, image/pjpeg, */*",
	}
}
