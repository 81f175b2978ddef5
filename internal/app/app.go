package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/prediction-pool/external/webhook"
	"github.com/riskibarqy/prediction-pool/internal/config"
	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	cacherepo "github.com/riskibarqy/prediction-pool/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/prediction-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prediction-pool/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/prediction-pool/internal/interfaces/httpapi"
	"github.com/riskibarqy/prediction-pool/internal/observability"
	basecache "github.com/riskibarqy/prediction-pool/internal/platform/cache"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
	"github.com/riskibarqy/prediction-pool/internal/usecase"
)

type storage struct {
	leagues  league.Repository
	config   league.ConfigRepository
	entities prediction.EntityRepository
	bets     prediction.BetRepository
	ledger   points.Ledger
	locker   usecase.EntityLocker
	close    func() error
}

// NewHTTPServer wires storage, usecases and the router. The returned cleanup releases storage.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var cache *basecache.Store
	if cfg.CacheEnabled {
		cache = basecache.NewStore(cfg.CacheTTL)
		store.leagues = cacherepo.NewLeagueRepository(store.leagues, cache)
		store.config = cacherepo.NewConfigRepository(store.config, cache)
	}

	notifier, err := newScoreNotifier(cfg, logger)
	if err != nil {
		_ = store.close()
		return nil, nil, err
	}

	var metrics *observability.Metrics
	opts := usecase.EvaluationServiceOptions{
		Workers:  cfg.EvaluationWorkers,
		Notifier: notifier,
		Logger:   logger.Named("evaluation"),
	}
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		metrics.RegisterCache("repository", cache)
		opts.Recorder = metrics
	}

	leaderboards := usecase.NewLeaderboardService(store.leagues, store.config, store.ledger, cache)
	engine := usecase.NewEvaluationService(
		store.entities,
		store.bets,
		store.config,
		store.ledger,
		evaluator.NewRegistry(),
		store.locker,
		leaderboards,
		opts,
	)

	handler := httpapi.NewHandler(
		engine,
		usecase.NewBetService(store.leagues, store.entities, store.bets, nil),
		usecase.NewOutcomeService(store.entities, store.locker, logger),
		leaderboards,
		usecase.NewPointsService(store.ledger),
		usecase.NewEvaluatorConfigService(store.leagues, store.config, leaderboards, nil),
		logger,
	)

	var exporter httpapi.MetricsExporter
	if metrics != nil {
		exporter = metrics
	}
	router := httpapi.NewRouter(handler, logger.Named("http"), exporter, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, store.close, nil
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return openPostgresStorage(ctx, cfg, logger)
	default:
		return newMemoryStorage(cfg.SeedDemoData, time.Now().UTC())
	}
}

func newMemoryStorage(seed bool, now time.Time) (storage, error) {
	leagues := memory.NewLeagueRepository(nil)
	out := storage{
		leagues:  leagues,
		config:   memory.NewConfigRepository(nil, nil),
		entities: memory.NewEntityRepository(nil),
		bets:     memory.NewBetRepository(),
		ledger:   memory.NewPointsLedger(),
		locker:   memory.NewEntityLocker(),
		close:    func() error { return nil },
	}
	if seed {
		for _, l := range memory.SeedLeagues() {
			if err := leagues.Add(l); err != nil {
				return storage{}, fmt.Errorf("seed leagues: %w", err)
			}
		}
		out.config = memory.NewConfigRepository(memory.SeedEvaluators(), memory.SeedSettings())
		out.entities = memory.NewEntityRepository(memory.SeedEntities(now))
	}
	return out, nil
}

func openPostgresStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return storage{}, err
	}

	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db, time.Now().UTC()); err != nil {
			_ = db.Close()
			return storage{}, fmt.Errorf("seed demo data: %w", err)
		}
		logger.InfoContext(ctx, "demo data seeded")
	}

	return storage{
		leagues:  postgres.NewLeagueRepository(db),
		config:   postgres.NewConfigRepository(db),
		entities: postgres.NewEntityRepository(db),
		bets:     postgres.NewBetRepository(db),
		ledger:   postgres.NewPointsLedger(db),
		locker:   postgres.NewAdvisoryLocker(db, logger.Named("locker")),
		close:    db.Close,
	}, nil
}

func newScoreNotifier(cfg config.Config, logger *logging.Logger) (usecase.ScoreNotifier, error) {
	if cfg.NotifyWebhookURL == "" {
		return usecase.NewLoggingNotifier(logger), nil
	}

	notifier, err := webhook.NewNotifier(webhook.Config{
		URL:            cfg.NotifyWebhookURL,
		Token:          cfg.NotifyWebhookToken,
		Timeout:        cfg.NotifyWebhookTimeout,
		CircuitBreaker: cfg.NotifyCircuit,
	}, logger.Named("webhook"))
	if err != nil {
		return nil, fmt.Errorf("build score webhook: %w", err)
	}
	return notifier, nil
}
