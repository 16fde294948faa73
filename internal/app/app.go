package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/dsfl/fantasy-league/internal/config"
	"github.com/dsfl/fantasy-league/internal/domain/scoring"
	"github.com/dsfl/fantasy-league/internal/infrastructure/account/gatekeeper"
	"github.com/dsfl/fantasy-league/internal/infrastructure/repository/postgres"
	"github.com/dsfl/fantasy-league/internal/interfaces/httpapi"
	"github.com/dsfl/fantasy-league/internal/platform/cache"
	"github.com/dsfl/fantasy-league/internal/platform/logging"
	"github.com/dsfl/fantasy-league/internal/platform/resilience"
	"github.com/dsfl/fantasy-league/internal/usecase"

	_ "github.com/lib/pq"
)

// App bundles the HTTP server with the resources it owns so main can
// shut both down in order.
type App struct {
	Server *http.Server
	DB     *sqlx.DB
}

func NewApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.PlayersSeedPath != "" {
		if err := postgres.BootstrapPlayersFromCSV(ctx, db, cfg.PlayersSeedPath); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrap players: %w", err)
		}
	}

	playerRepo := postgres.NewPlayerRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	perfRepo := postgres.NewPerformanceRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	rosterRepo := postgres.NewRosterRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	newsRepo := postgres.NewNewsRepository(db)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	pointsSvc := usecase.NewPointsService(matchRepo, teamRepo, rosterRepo, perfRepo)
	playerSvc := usecase.NewPlayerService(playerRepo, perfRepo, rosterRepo, pointsSvc, store)
	teamSvc := usecase.NewTeamService(teamRepo, playerRepo, rosterRepo)
	rosterSvc := usecase.NewRosterService(teamRepo, playerRepo, rosterRepo, settingsRepo)
	performanceSvc := usecase.NewPerformanceService(matchRepo, playerRepo, perfRepo, pointsSvc, scoring.DefaultRuleset())
	reportSvc := usecase.NewReportService(matchRepo, teamRepo, rosterRepo, perfRepo, playerRepo)
	newsSvc := usecase.NewNewsService(newsRepo)
	settingsSvc := usecase.NewSettingsService(settingsRepo)

	gatekeeperClient := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectURL,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		playerSvc,
		teamSvc,
		rosterSvc,
		performanceSvc,
		reportSvc,
		newsSvc,
		settingsSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, gatekeeperClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, DB: db}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
