package chpp

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-chpp/auth"
	"github.com/goliatone/go-chpp/core"
	"github.com/goliatone/go-chpp/retry"
)

// Client fetches typed resources from the gateway. Every request is signed
// with fresh material, retried on transient failures, and decoded into
// domain values before callers see it.
type Client struct {
	config      core.Config
	transport   core.TransportAdapter
	credentials core.CredentialSource
	signer      *auth.Signer
	policy      *retry.Policy
	logger      core.Logger
}

func NewClient(cfg core.Config, transport core.TransportAdapter, credentials core.CredentialSource, signer *auth.Signer, logger core.Logger) *Client {
	if signer == nil {
		signer = auth.NewSigner()
	}
	logger = glog.Ensure(logger)
	return &Client{
		config:      cfg,
		transport:   transport,
		credentials: credentials,
		signer:      signer,
		policy:      retry.NewPolicy(cfg.Retry, logger),
		logger:      logger,
	}
}

// Policy exposes the retry policy so callers can swap the sleep hook.
func (c *Client) Policy() *retry.Policy {
	return c.policy
}

func (c *Client) FetchTeamDetails(ctx context.Context) (core.TeamDetails, error) {
	body, err := c.fetch(ctx, EndpointTeamDetails, nil)
	if err != nil {
		return core.TeamDetails{}, err
	}

	var payload teamDetailsPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return core.TeamDetails{}, core.NewParseError(err, "chpp: decode teamdetails response")
	}

	details := core.TeamDetails{User: payload.User.toDomain()}
	for _, teamPayload := range payload.Teams {
		team, err := teamPayload.toDomain()
		if err != nil {
			return core.TeamDetails{}, core.NewParseError(err, "chpp: invalid team id in teamdetails response")
		}
		details.Teams = append(details.Teams, team)
	}
	return details, nil
}

func (c *Client) FetchWorldDetails(ctx context.Context) (core.WorldDetails, error) {
	body, err := c.fetch(ctx, EndpointWorldDetails, nil)
	if err != nil {
		return core.WorldDetails{}, err
	}

	var payload worldDetailsPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return core.WorldDetails{}, core.NewParseError(err, "chpp: decode worlddetails response")
	}

	details := core.WorldDetails{}
	for _, leaguePayload := range payload.Leagues {
		details.Leagues = append(details.Leagues, leaguePayload.toDomain())
	}
	return details, nil
}

func (c *Client) FetchPlayers(ctx context.Context, teamID int64) (core.Roster, error) {
	query := url.Values{}
	if teamID > 0 {
		query.Set("teamID", strconv.FormatInt(teamID, 10))
	}
	query.Set("actionType", "view")
	query.Set("includeMatchInfo", "true")

	body, err := c.fetch(ctx, EndpointPlayers, query)
	if err != nil {
		return core.Roster{}, err
	}

	var payload playersPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return core.Roster{}, core.NewParseError(err, "chpp: decode players response")
	}

	if payload.Team.PlayerList == nil {
		return core.Roster{}, core.NewParseError(
			fmt.Errorf("chpp: no player list in response"),
			"chpp: players response missing player list")
	}

	roster := core.Roster{TeamID: teamID}
	if rosterTeamID, err := strconv.ParseInt(payload.Team.TeamID, 10, 64); err == nil {
		roster.TeamID = rosterTeamID
	}
	for _, playerPayload := range payload.Team.PlayerList.Players {
		roster.Players = append(roster.Players, playerPayload.toDomain())
	}
	return roster, nil
}

func (c *Client) FetchPlayerDetails(ctx context.Context, playerID int64) (core.Player, error) {
	query := url.Values{}
	query.Set("playerID", strconv.FormatInt(playerID, 10))

	body, err := c.fetch(ctx, EndpointPlayerDetails, query)
	if err != nil {
		return core.Player{}, err
	}

	var payload playerDetailsPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return core.Player{}, core.NewParseError(err, "chpp: decode playerdetails response")
	}
	return payload.Player.toDomain(), nil
}

// fetch runs one signed endpoint call under the retry policy. Signing
// material is minted inside the attempt so every retry carries a new nonce.
func (c *Client) fetch(ctx context.Context, endpoint Endpoint, extra url.Values) ([]byte, error) {
	return retry.Do(ctx, c.policy, endpoint.Name, func(ctx context.Context) ([]byte, error) {
		return c.fetchOnce(ctx, endpoint, extra)
	})
}

func (c *Client) fetchOnce(ctx context.Context, endpoint Endpoint, extra url.Values) ([]byte, error) {
	sc, err := c.credentials.Fresh(ctx)
	if err != nil {
		return nil, err
	}

	baseURL := c.config.Endpoints.BaseURL + c.config.Endpoints.ResourcePath
	query := url.Values{}
	query.Set("file", endpoint.Name)
	query.Set("version", endpoint.Version)
	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	header := c.signer.AuthorizationHeader(sc, "GET", baseURL, query, nil)

	resp, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  "GET",
		URL:     baseURL + "?" + query.Encode(),
		Headers: auth.RequestHeaders(header, c.config.UserAgent),
	})
	if err != nil {
		return nil, err
	}

	if bytes.Contains(resp.Body, []byte("<ErrorCode>")) {
		return nil, c.decodeErrorEnvelope(endpoint, resp)
	}
	if resp.StatusCode != 200 {
		return nil, core.NewAPIError(resp.StatusCode, resp.StatusCode,
			fmt.Sprintf("chpp: %s returned status %d", endpoint.Name, resp.StatusCode), "", endpoint.Name)
	}
	return resp.Body, nil
}

func (c *Client) decodeErrorEnvelope(endpoint Endpoint, resp core.TransportResponse) error {
	var payload errorPayload
	if err := xml.Unmarshal(resp.Body, &payload); err != nil {
		return core.NewParseError(err, "chpp: decode error envelope")
	}
	c.logger.Error("gateway returned error envelope",
		"endpoint", endpoint.Name,
		"code", payload.ErrorCode,
		"message", payload.Error,
		"guid", payload.ErrorGUID,
	)
	// Envelopes arrive over HTTP 200; the numeric envelope code is what
	// drives retry classification.
	code, err := strconv.Atoi(strings.TrimSpace(payload.ErrorCode))
	if err != nil {
		code = 0
	}
	return core.NewAPIError(code, resp.StatusCode, payload.Error, payload.ErrorGUID, payload.Request)
}

var _ core.Client = (*Client)(nil)
