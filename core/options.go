package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// NewStaticRawConfigLoader wraps a literal map as a config source.
func NewStaticRawConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.UserAgent) != "" {
		layer["user_agent"] = cfg.UserAgent
	}

	endpoints := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Endpoints.BaseURL) != "" {
		endpoints["base_url"] = cfg.Endpoints.BaseURL
	}
	if includeZero || strings.TrimSpace(cfg.Endpoints.RequestTokenPath) != "" {
		endpoints["request_token_path"] = cfg.Endpoints.RequestTokenPath
	}
	if includeZero || strings.TrimSpace(cfg.Endpoints.AuthorizePath) != "" {
		endpoints["authorize_path"] = cfg.Endpoints.AuthorizePath
	}
	if includeZero || strings.TrimSpace(cfg.Endpoints.AccessTokenPath) != "" {
		endpoints["access_token_path"] = cfg.Endpoints.AccessTokenPath
	}
	if includeZero || strings.TrimSpace(cfg.Endpoints.ResourcePath) != "" {
		endpoints["resource_path"] = cfg.Endpoints.ResourcePath
	}
	if len(endpoints) > 0 {
		layer["endpoints"] = endpoints
	}

	oauth := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.OAuth.Callback) != "" {
		oauth["callback"] = cfg.OAuth.Callback
	}
	if includeZero || strings.TrimSpace(cfg.OAuth.Scope) != "" {
		oauth["scope"] = cfg.OAuth.Scope
	}
	if len(oauth) > 0 {
		layer["oauth"] = oauth
	}

	retry := map[string]any{}
	if includeZero || cfg.Retry.MaxRetries > 0 {
		retry["max_retries"] = cfg.Retry.MaxRetries
	}
	if includeZero || cfg.Retry.InitialBackoff > 0 {
		retry["initial_backoff"] = cfg.Retry.InitialBackoff
	}
	if includeZero || cfg.Retry.MaxBackoff > 0 {
		retry["max_backoff"] = cfg.Retry.MaxBackoff
	}
	if len(retry) > 0 {
		layer["retry"] = retry
	}

	return layer
}

var _ ConfigProvider = (*CfgxConfigProvider)(nil)
var _ OptionsResolver = GoOptionsResolver{}
