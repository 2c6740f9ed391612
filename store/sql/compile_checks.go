package sqlstore

import "github.com/goliatone/go-chpp/core"

var (
	_ core.GenerationStore = (*GenerationStore)(nil)
	_ core.GenerationStore = (*CachedGenerationStore)(nil)
	_ core.TeamStore       = (*TeamStore)(nil)
	_ core.WorldStore      = (*WorldStore)(nil)
	_ core.PlayerStore     = (*PlayerStore)(nil)
	_ core.SecretStore     = (*SecretStore)(nil)
	_ core.TeamReader      = (*TeamStore)(nil)
	_ core.PlayerReader    = (*PlayerStore)(nil)
)
