package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-chpp/core"
)

var errBodyTooLarge = errors.New("transport: response body exceeds size limit")

const defaultClientTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPAdapter executes one HTTP exchange per call. It performs no signing
// and no retries; both live in the layers above.
type HTTPAdapter struct {
	Client               HTTPDoer
	MaxResponseBodyBytes int64
}

func NewHTTPAdapter(client HTTPDoer) *HTTPAdapter {
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}
	return &HTTPAdapter{
		Client:               client,
		MaxResponseBodyBytes: defaultResponseBodyLimit,
	}
}

func (a *HTTPAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil || a.Client == nil {
		return core.TransportResponse{}, core.NewNetworkError(errors.New("missing http client"), "transport: http client is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	parsedURL, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || parsedURL.String() == "" {
		if err == nil {
			err = errors.New("empty url")
		}
		return core.TransportResponse{}, core.NewParseError(err, "transport: invalid request url")
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, parsedURL.String(), nil)
	if err != nil {
		return core.TransportResponse{}, core.NewParseError(err, "transport: create http request")
	}
	for key, value := range req.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), value)
	}

	httpRes, err := a.Client.Do(httpReq)
	if err != nil {
		return core.TransportResponse{}, core.NewNetworkError(err, "transport: execute http request")
	}
	defer httpRes.Body.Close()

	limit := a.MaxResponseBodyBytes
	if limit <= 0 {
		limit = defaultResponseBodyLimit
	}
	body, err := io.ReadAll(io.LimitReader(httpRes.Body, limit+1))
	if err != nil {
		return core.TransportResponse{}, core.NewNetworkError(err, "transport: read response body")
	}
	if int64(len(body)) > limit {
		return core.TransportResponse{}, core.NewNetworkError(errBodyTooLarge, "transport: response body exceeds size limit")
	}

	return core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Body:       body,
	}, nil
}

var _ core.TransportAdapter = (*HTTPAdapter)(nil)
