package core

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorCodeNetwork  = "CHPP_NETWORK"
	ErrorCodeParse    = "CHPP_PARSE"
	ErrorCodeAuth     = "CHPP_AUTH"
	ErrorCodeAPI      = "CHPP_API_ERROR"
	ErrorCodeStorage  = "CHPP_STORAGE"
	ErrorCodeInternal = "CHPP_INTERNAL"
)

// NewNetworkError wraps a transport failure. Network errors are always
// retryable.
func NewNetworkError(source error, message string) *goerrors.Error {
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithTextCode(ErrorCodeNetwork)
}

// NewParseError wraps a response body that could not be decoded.
func NewParseError(source error, message string) *goerrors.Error {
	return goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithTextCode(ErrorCodeParse)
}

// NewAuthError flags a handshake or signing failure. Auth errors are never
// retried; the caller has to re-authorize.
func NewAuthError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithTextCode(ErrorCodeAuth)
}

// NewAPIError records a structured error envelope returned by the gateway.
// The envelope's numeric code travels in Code so retry classification can
// inspect it; the gateway delivers envelopes over HTTP 200, so the HTTP
// status is only metadata.
func NewAPIError(code int, httpStatus int, message, guid, request string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryExternal).
		WithCode(code).
		WithTextCode(ErrorCodeAPI).
		WithMetadata(map[string]any{
			"http_status": httpStatus,
			"guid":        guid,
			"request":     request,
		})
}

// NewStorageError wraps a persistence failure.
func NewStorageError(source error, message string) *goerrors.Error {
	return goerrors.Wrap(source, goerrors.CategoryInternal, message).
		WithTextCode(ErrorCodeStorage)
}

// IsRetryable reports whether a failed request may be attempted again with
// fresh signing material. Only transient conditions qualify: transport
// failures, and gateway envelopes carrying error code 503 or 429.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}

	switch richErr.TextCode {
	case ErrorCodeNetwork:
		return true
	case ErrorCodeAPI:
		return richErr.Code == 503 || richErr.Code == 429
	}
	return false
}
