package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pedalads/internal/config"
	"pedalads/internal/db"
	"pedalads/internal/handlers"
	"pedalads/internal/logger"
	"pedalads/internal/metrics"
	"pedalads/internal/ratelimit"
	"pedalads/internal/repository"
	"pedalads/internal/routes"
	"pedalads/internal/services"
	helpers "pedalads/internal/utils/helpers"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	mailQueueSize    = 200
	sweepInterval    = 5 * time.Minute
	logRetentionDays = 14
)

// App owns the router and every resource that must be released on shutdown.
type App struct {
	Router *mux.Router

	pool   *pgxpool.Pool
	redis  *redis.Client
	mailer *services.Mailer
	stop   context.CancelFunc
}

func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.DbAutoMigrate {
		if err := migrate(cfg); err != nil {
			return nil, err
		}
	}

	pool, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	logger.Log.Info("connected to postgres", zap.String("dsn", cfg.GetDSNSafe()))

	a := &App{pool: pool}
	bg, stop := context.WithCancel(context.Background())
	a.stop = stop

	m, metricsHandler, err := metrics.Setup("pedalads")
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("setup metrics: %w", err)
	}

	checks := map[string]handlers.Check{"postgres": pool.Ping}
	limiter := a.newLimiter(ctx, bg, cfg, checks)

	// repositories
	postRepo := repository.NewPostRepo(pool)
	leadRepo := repository.NewLeadRepo(pool)
	consentRepo := repository.NewConsentRepo(pool)

	// services
	var queue services.Enqueuer
	if cfg.SMTPEnabled() {
		a.mailer = services.NewMailer(services.NewEmailService(cfg), m, mailQueueSize)
		a.mailer.Start(cfg.MailWorkers)
		queue = a.mailer
	} else {
		logger.Log.Warn("SMTP is not configured, lead notifications are logged only")
	}
	notifier := services.NewNotifier(queue, cfg.NotifyEmail, cfg.SiteURL)

	postSvc := services.NewPostService(postRepo, limiter, m)
	leadSvc := services.NewLeadService(leadRepo, notifier, limiter, m)
	consentSvc := services.NewConsentService(consentRepo, limiter, m)
	authSvc := services.NewAdminAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AccessTTL(), limiter)

	// handlers
	h := routes.Handlers{
		Post:       handlers.NewPostHandler(postSvc),
		Lead:       handlers.NewLeadHandler(leadSvc),
		Consent:    handlers.NewConsentHandler(consentSvc),
		Calculator: handlers.NewCalculatorHandler(),
		Auth:       handlers.NewAuthHandler(authSvc),
		Logs:       handlers.NewAdminLogsHandler(logger.Dir, logRetentionDays),
		Health:     handlers.NewHealthHandler(checks),
		Metrics:    metricsHandler,
	}

	a.Router = mux.NewRouter()
	routes.InitRoutes(a.Router, h, routes.Options{
		JWTSecret:    cfg.JWTSecret,
		RateLimitRPM: cfg.RateLimitRPM,
		Metrics:      m,
	})
	a.Router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.Error(w, http.StatusNotFound, "not found")
	})

	return a, nil
}

// newLimiter returns the redis limiter when configured and reachable,
// otherwise the in-memory one with a background sweeper.
func (a *App) newLimiter(ctx, bg context.Context, cfg *config.Config, checks map[string]handlers.Check) ratelimit.Limiter {
	if cfg.RateLimitBackend == "redis" {
		client, err := db.NewRedisClient(ctx, cfg)
		if err == nil {
			a.redis = client
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
			logger.Log.Info("rate limiter backend: redis", zap.String("addr", cfg.RedisAddr))
			return ratelimit.NewRedis(client, "")
		}
		logger.Log.Warn("redis unavailable, falling back to in-memory rate limiter", zap.Error(err))
	}

	mem := ratelimit.NewMemory()
	mem.StartSweeper(bg, sweepInterval)
	logger.Log.Info("rate limiter backend: memory")
	return mem
}

func migrate(cfg *config.Config) error {
	sqlDB, err := db.OpenSQL(cfg)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(sqlDB, "up"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Log.Info("migrations applied")
	return nil
}

// Close stops background work, drains the mail queue and closes connections.
func (a *App) Close() {
	if a.stop != nil {
		a.stop()
	}
	if a.mailer != nil {
		a.mailer.Stop()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
