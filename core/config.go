package core

import (
	"fmt"
	"strings"
	"time"
)

type EndpointConfig struct {
	BaseURL          string `koanf:"base_url" mapstructure:"base_url"`
	RequestTokenPath string `koanf:"request_token_path" mapstructure:"request_token_path"`
	AuthorizePath    string `koanf:"authorize_path" mapstructure:"authorize_path"`
	AccessTokenPath  string `koanf:"access_token_path" mapstructure:"access_token_path"`
	ResourcePath     string `koanf:"resource_path" mapstructure:"resource_path"`
}

type OAuthConfig struct {
	Callback string `koanf:"callback" mapstructure:"callback"`
	Scope    string `koanf:"scope" mapstructure:"scope"`
}

type RetryConfig struct {
	MaxRetries     int           `koanf:"max_retries" mapstructure:"max_retries"`
	InitialBackoff time.Duration `koanf:"initial_backoff" mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `koanf:"max_backoff" mapstructure:"max_backoff"`
}

type Config struct {
	UserAgent string         `koanf:"user_agent" mapstructure:"user_agent"`
	Endpoints EndpointConfig `koanf:"endpoints" mapstructure:"endpoints"`
	OAuth     OAuthConfig    `koanf:"oauth" mapstructure:"oauth"`
	Retry     RetryConfig    `koanf:"retry" mapstructure:"retry"`
}

func DefaultConfig() Config {
	return Config{
		UserAgent: "go-chpp/1.0",
		Endpoints: EndpointConfig{
			BaseURL:          "https://chpp.hattrick.org",
			RequestTokenPath: "/oauth/request_token.ashx",
			AuthorizePath:    "/oauth/authorize.aspx",
			AccessTokenPath:  "/oauth/access_token.ashx",
			ResourcePath:     "/chppxml.ashx",
		},
		OAuth: OAuthConfig{
			Callback: "oob",
			Scope:    "set_matchorder",
		},
		Retry: RetryConfig{
			MaxRetries:     3,
			InitialBackoff: time.Second,
			MaxBackoff:     32 * time.Second,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoints.BaseURL) == "" {
		return fmt.Errorf("core: endpoints.base_url is required")
	}
	if strings.TrimSpace(c.Endpoints.ResourcePath) == "" {
		return fmt.Errorf("core: endpoints.resource_path is required")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("core: retry.max_retries must not be negative")
	}
	if c.Retry.InitialBackoff <= 0 {
		return fmt.Errorf("core: retry.initial_backoff must be positive")
	}
	if c.Retry.MaxBackoff < c.Retry.InitialBackoff {
		return fmt.Errorf("core: retry.max_backoff must not be below retry.initial_backoff")
	}
	return nil
}
