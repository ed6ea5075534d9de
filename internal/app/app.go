package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ligaops/competition-engine/internal/config"
	"github.com/ligaops/competition-engine/internal/domain/discipline"
	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/domain/roster"
	"github.com/ligaops/competition-engine/internal/domain/season"
	"github.com/ligaops/competition-engine/internal/domain/standing"
	"github.com/ligaops/competition-engine/internal/infrastructure/officials"
	"github.com/ligaops/competition-engine/internal/infrastructure/repository/memory"
	"github.com/ligaops/competition-engine/internal/infrastructure/repository/postgres"
	"github.com/ligaops/competition-engine/internal/interfaces/httpapi"
	"github.com/ligaops/competition-engine/internal/platform/cache"
	idgen "github.com/ligaops/competition-engine/internal/platform/id"
	"github.com/ligaops/competition-engine/internal/platform/logging"
	"github.com/ligaops/competition-engine/internal/platform/resilience"
	"github.com/ligaops/competition-engine/internal/usecase"
)

type repositories struct {
	seasons       season.Repository
	registrations registration.Repository
	cardEvents    discipline.CardEventRepository
	suspensions   discipline.SuspensionRepository
	lineups       lineup.Repository
	matches       match.Repository
	rosters       roster.Repository
	standings     standing.Repository
}

// Closer releases resources owned by the application wiring, currently the
// database handle when one was opened.
type Closer func() error

// NewHTTPServer wires repositories, services and the HTTP surface into one
// server. An empty DB_URL selects the seeded in-memory repositories.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, Closer, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closer, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	officialsProvider, err := buildOfficialsProvider(cfg, logger)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	ids := idgen.NewRandomGenerator()

	registrationSvc := usecase.NewRegistrationService(repos.seasons, repos.registrations, ids)
	suspensionSvc := usecase.NewSuspensionService(repos.seasons, repos.matches, repos.cardEvents, repos.suspensions, ids)
	lineupSvc := usecase.NewLineupService(repos.seasons, repos.matches, repos.lineups, repos.rosters, suspensionSvc)
	matchSvc := usecase.NewMatchService(repos.seasons, repos.matches, repos.lineups, officialsProvider, suspensionSvc, ids)

	var tables *cache.Store
	if cfg.CacheEnabled {
		tables = cache.NewStore(cfg.CacheTTL)
	}
	standingSvc := usecase.NewStandingService(repos.seasons, repos.registrations, repos.matches, repos.standings, tables)
	recomputeSvc := usecase.NewRecomputeService(repos.seasons, suspensionSvc, standingSvc)

	handler := httpapi.NewHandler(registrationSvc, suspensionSvc, lineupSvc, matchSvc, standingSvc, recomputeSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.OpsToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closer()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closer, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, Closer, error) {
	if cfg.DBURL == "" {
		logger.Info("repository backend selected", "backend", "memory")
		return repositories{
			seasons:       memory.NewSeasonRepository(memory.SeedSeasons()),
			registrations: memory.NewRegistrationRepository(),
			cardEvents:    memory.NewCardEventRepository(),
			suspensions:   memory.NewSuspensionRepository(),
			lineups:       memory.NewLineupRepository(),
			matches:       memory.NewMatchRepository(memory.SeedMatches()),
			rosters:       memory.NewRosterRepository(memory.SeedRoster()),
			standings:     memory.NewStandingRepository(),
		}, func() error { return nil }, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("repository backend selected", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		seasons:       postgres.NewSeasonRepository(db),
		registrations: postgres.NewRegistrationRepository(db),
		cardEvents:    postgres.NewCardEventRepository(db),
		suspensions:   postgres.NewSuspensionRepository(db),
		lineups:       postgres.NewLineupRepository(db),
		matches:       postgres.NewMatchRepository(db),
		rosters:       postgres.NewRosterRepository(db),
		standings:     postgres.NewStandingRepository(db),
	}, db.Close, nil
}

func buildOfficialsProvider(cfg config.Config, logger *logging.Logger) (usecase.OfficialsProvider, error) {
	if !cfg.OfficialsEnabled {
		logger.Info("officials provider selected", "provider", "stub")
		return officials.NewStub(), nil
	}

	client, err := officials.NewClient(officials.ClientConfig{
		BaseURL:  cfg.OfficialsBaseURL,
		APIToken: cfg.OfficialsAPIToken,
		Timeout:  cfg.OfficialsTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OfficialsCircuitEnabled,
			FailureThreshold: cfg.OfficialsCircuitFailureCount,
			OpenTimeout:      cfg.OfficialsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OfficialsCircuitHalfOpenReq,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build officials client: %w", err)
	}

	logger.Info("officials provider selected", "provider", "http", "base_url", cfg.OfficialsBaseURL)

	return client, nil
}
