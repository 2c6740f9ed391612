package chpp

import (
	"context"
	"fmt"

	"github.com/goliatone/go-chpp/auth"
	chppclient "github.com/goliatone/go-chpp/chpp"
	chppcommand "github.com/goliatone/go-chpp/command"
	"github.com/goliatone/go-chpp/core"
	chppquery "github.com/goliatone/go-chpp/query"
	chppsync "github.com/goliatone/go-chpp/sync"
	"github.com/goliatone/go-chpp/transport"
	glog "github.com/goliatone/go-logger/glog"
)

// Commands exposes the mutation entry points as go-command handlers.
type Commands struct {
	StartSync         *chppcommand.StartSyncCommand
	BeginHandshake    *chppcommand.BeginHandshakeCommand
	CompleteHandshake *chppcommand.CompleteHandshakeCommand
}

// Queries exposes the read side as go-command queriers. Team and player
// queries are only available when the configured stores can serve reads;
// they are nil otherwise.
type Queries struct {
	LatestGeneration *chppquery.LatestGenerationQuery
	ListTeams        *chppquery.ListTeamsQuery
	GetTeam          *chppquery.GetTeamQuery
	ListPlayers      *chppquery.ListPlayersQuery
}

// Service wires signer, transport, client, stores and orchestrator into one
// ready-to-use surface.
type Service struct {
	config       core.Config
	client       core.Client
	handshake    core.Handshake
	orchestrator *chppsync.Orchestrator
	secrets      core.SecretStore
	stores       chppsync.Stores
	commands     Commands
	queries      Queries
	logger       core.Logger
}

type Option func(*serviceOptions)

type serviceOptions struct {
	config         *core.Config
	configProvider core.ConfigProvider
	resolver       core.OptionsResolver
	transport      core.TransportAdapter
	secrets        core.SecretStore
	stores         chppsync.Stores
	logger         core.Logger
	provider       core.LoggerProvider
}

// WithConfig supplies runtime overrides. They win over values loaded through
// the config provider, which in turn win over the built-in defaults.
func WithConfig(cfg core.Config) Option {
	return func(options *serviceOptions) {
		options.config = &cfg
	}
}

// WithConfigProvider loads configuration from an external source before the
// runtime overrides are applied.
func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(options *serviceOptions) {
		options.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(options *serviceOptions) {
		options.resolver = resolver
	}
}

func WithTransport(adapter core.TransportAdapter) Option {
	return func(options *serviceOptions) {
		options.transport = adapter
	}
}

func WithSecretStore(secrets core.SecretStore) Option {
	return func(options *serviceOptions) {
		options.secrets = secrets
	}
}

func WithStores(stores chppsync.Stores) Option {
	return func(options *serviceOptions) {
		options.stores = stores
	}
}

func WithLogger(logger core.Logger) Option {
	return func(options *serviceOptions) {
		options.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(options *serviceOptions) {
		options.provider = provider
	}
}

// New builds a fully wired service for one consumer credential pair. Stores
// are required; everything else has a working default.
func New(consumer core.ConsumerCredentials, opts ...Option) (*Service, error) {
	if err := consumer.Validate(); err != nil {
		return nil, err
	}

	options := serviceOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}

	configProvider := options.configProvider
	if configProvider == nil {
		configProvider = core.NewCfgxConfigProvider(nil)
	}
	resolver := options.resolver
	if resolver == nil {
		resolver = core.GoOptionsResolver{}
	}

	defaults := core.DefaultConfig()
	loaded, err := configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, err
	}
	runtime := core.Config{}
	if options.config != nil {
		runtime = *options.config
	}
	cfg, err := resolver.Resolve(defaults, loaded, runtime)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if options.stores.Generations == nil || options.stores.Teams == nil ||
		options.stores.Worlds == nil || options.stores.Players == nil {
		return nil, fmt.Errorf("chpp: generation, team, world and player stores are required")
	}

	secrets := options.secrets
	if secrets == nil {
		secrets = chppsync.NewMemorySecretStore()
	}

	adapter := options.transport
	if adapter == nil {
		adapter = transport.NewHTTPAdapter(nil)
	}

	provider, logger := glog.Resolve("chpp", options.provider, options.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("chpp"); named != nil {
			logger = glog.Ensure(named)
		}
	}
	signer := auth.NewSigner()
	credentials := auth.NewStoredTokenSource(consumer, secrets, signer)
	client := chppclient.NewClient(cfg, adapter, credentials, signer, logger)
	handshake := auth.NewHandshake(cfg, consumer, adapter, signer, logger)
	orchestrator := chppsync.NewOrchestrator(client, options.stores, secrets, logger)

	service := &Service{
		config:       cfg,
		client:       client,
		handshake:    handshake,
		orchestrator: orchestrator,
		secrets:      secrets,
		stores:       options.stores,
		logger:       logger,
	}
	service.commands = Commands{
		StartSync:         chppcommand.NewStartSyncCommand(orchestrator),
		BeginHandshake:    chppcommand.NewBeginHandshakeCommand(handshake),
		CompleteHandshake: chppcommand.NewCompleteHandshakeCommand(handshake, secrets),
	}
	service.queries = Queries{
		LatestGeneration: chppquery.NewLatestGenerationQuery(options.stores.Generations),
	}
	if teams, ok := options.stores.Teams.(core.TeamReader); ok {
		service.queries.ListTeams = chppquery.NewListTeamsQuery(options.stores.Generations, teams)
		service.queries.GetTeam = chppquery.NewGetTeamQuery(options.stores.Generations, teams)
	}
	if players, ok := options.stores.Players.(core.PlayerReader); ok {
		service.queries.ListPlayers = chppquery.NewListPlayersQuery(options.stores.Generations, players)
	}
	return service, nil
}

func (s *Service) Config() core.Config {
	if s == nil {
		return core.Config{}
	}
	return s.config
}

func (s *Service) Client() core.Client {
	if s == nil {
		return nil
	}
	return s.client
}

func (s *Service) Handshake() core.Handshake {
	if s == nil {
		return nil
	}
	return s.handshake
}

func (s *Service) Orchestrator() *chppsync.Orchestrator {
	if s == nil {
		return nil
	}
	return s.orchestrator
}

func (s *Service) SecretStore() core.SecretStore {
	if s == nil {
		return nil
	}
	return s.secrets
}

func (s *Service) Commands() Commands {
	if s == nil {
		return Commands{}
	}
	return s.commands
}

func (s *Service) Queries() Queries {
	if s == nil {
		return Queries{}
	}
	return s.queries
}

func (s *Service) Stores() chppsync.Stores {
	if s == nil {
		return chppsync.Stores{}
	}
	return s.stores
}
