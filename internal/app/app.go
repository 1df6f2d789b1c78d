package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/amar93190/Team-up/internal/config"
	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/domain/team"
	"github.com/amar93190/Team-up/internal/domain/user"
	"github.com/amar93190/Team-up/internal/infrastructure/account/gatekeeper"
	"github.com/amar93190/Team-up/internal/infrastructure/notifyqueue"
	"github.com/amar93190/Team-up/internal/infrastructure/push"
	cacherepo "github.com/amar93190/Team-up/internal/infrastructure/repository/cache"
	"github.com/amar93190/Team-up/internal/infrastructure/repository/memory"
	"github.com/amar93190/Team-up/internal/infrastructure/repository/postgres"
	"github.com/amar93190/Team-up/internal/interfaces/httpapi"
	basecache "github.com/amar93190/Team-up/internal/platform/cache"
	idgen "github.com/amar93190/Team-up/internal/platform/id"
	"github.com/amar93190/Team-up/internal/platform/invitecode"
	"github.com/amar93190/Team-up/internal/platform/logging"
	"github.com/amar93190/Team-up/internal/platform/resilience"
	"github.com/amar93190/Team-up/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. The returned cleanup releases the notify worker pool
// and the database handle; call it after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var (
		teamRepo    team.Repository
		eventRepo   event.Repository
		profileRepo user.ProfileRepository
	)
	if strings.TrimSpace(cfg.DBURL) != "" {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		cleanups = append(cleanups, func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("close database", "error", closeErr)
			}
		})

		teamRepo = postgres.NewTeamRepository(db)
		eventRepo = postgres.NewEventRepository(db)
		profileRepo = postgres.NewProfileRepository(db)
		logger.Info("postgres repositories enabled", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		teamRepo = memory.SeedTeamRepository()
		eventRepo = memory.SeedEventRepository()
		profileRepo = memory.SeedProfileRepository()
		logger.Info("memory repositories enabled", "reason", "DB_URL empty")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		eventRepo = cacherepo.NewEventRepository(eventRepo, store)
		profileRepo = cacherepo.NewProfileRepository(profileRepo, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	notifier, notifierCleanup, err := newTeamNotifier(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if notifierCleanup != nil {
		cleanups = append(cleanups, notifierCleanup)
	}

	teamSvc := usecase.NewTeamService(
		teamRepo,
		eventRepo,
		profileRepo,
		invitecode.NewRandomGenerator(),
		idgen.NewRandomGenerator(),
		notifier,
		logger,
	)
	eventSvc := usecase.NewEventService(eventRepo, logger)
	notificationSvc := usecase.NewNotificationService(teamRepo, newPushSender(cfg, logger), logger)

	gatekeeperClient := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMax,
		},
		logger,
	)

	handler := httpapi.NewHandler(teamSvc, eventSvc, notificationSvc, logger)
	router := httpapi.NewRouter(handler, gatekeeperClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func newPushSender(cfg config.Config, logger *logging.Logger) usecase.PushSender {
	if strings.TrimSpace(cfg.PushProviderURL) == "" {
		logger.Info("push provider not configured, deliveries will be logged only")
		return push.NewLogSender(logger)
	}

	logger.Info("push provider enabled", "endpoint", cfg.PushProviderURL)
	return push.NewProviderClient(nil, cfg.PushProviderURL, cfg.PushProviderToken, logger)
}

func newTeamNotifier(cfg config.Config, logger *logging.Logger) (usecase.TeamNotifier, func(), error) {
	if !cfg.NotifyQueueEnabled {
		logger.Info("team notifications disabled", "reason", "NOTIFY_QUEUE_ENABLED=false")
		return usecase.NopTeamNotifier{}, nil, nil
	}

	publisher := notifyqueue.NewPublisher(notifyqueue.PublisherConfig{
		BaseURL:       cfg.NotifyQueueBaseURL,
		Token:         cfg.NotifyQueueToken,
		TargetBaseURL: cfg.NotifyQueueTargetBaseURL,
		Retries:       cfg.NotifyQueueRetries,
		ForwardToken:  cfg.InternalJobToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NotifyQueueCircuitEnabled,
			FailureThreshold: cfg.NotifyQueueCircuitFailureCount,
			OpenTimeout:      cfg.NotifyQueueCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NotifyQueueCircuitHalfOpenMax,
		},
	}, logger)

	// Nonblocking pool so a saturated pool surfaces as a Submit error and the
	// notifier falls back to inline publishing.
	pool, err := ants.NewPool(cfg.NotifyWorkerPoolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, nil, fmt.Errorf("create notify worker pool: %w", err)
	}

	logger.Info("team notifications enabled",
		"queue_base_url", cfg.NotifyQueueBaseURL,
		"worker_pool_size", cfg.NotifyWorkerPoolSize,
	)

	return notifyqueue.NewNotifier(publisher, pool, logger), pool.Release, nil
}
