package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"

	"github.com/shearbook/shearbook/internal/apperrors"
	"github.com/shearbook/shearbook/internal/assistant"
	"github.com/shearbook/shearbook/internal/booking"
	"github.com/shearbook/shearbook/internal/database"
	"github.com/shearbook/shearbook/internal/email"
	"github.com/shearbook/shearbook/internal/health"
	"github.com/shearbook/shearbook/internal/httpapi"
	"github.com/shearbook/shearbook/internal/jobs"
	"github.com/shearbook/shearbook/internal/jobs/handlers"
	"github.com/shearbook/shearbook/internal/lifecycle"
	"github.com/shearbook/shearbook/internal/ratelimit"
	"github.com/shearbook/shearbook/internal/repository"
	"github.com/shearbook/shearbook/pkg/config"
	"github.com/shearbook/shearbook/pkg/graceful"
	"github.com/shearbook/shearbook/pkg/logger"
	"github.com/shearbook/shearbook/pkg/metrics"
	redispkg "github.com/shearbook/shearbook/pkg/redis"
)

const defaultShutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(*cfg)
	slog.SetDefault(log)

	log.Info("starting shearbook server",
		slog.String("env", cfg.AppEnv),
		slog.String("http_port", cfg.HTTP.Port),
	)

	shutdown := lifecycle.NewShutdown(log)

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	shutdown.Register("database", func(context.Context) error { return db.Close() })

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	migrator := database.NewMigrator(db, log)
	if err := migrator.ApplyDir(ctx, "migrations"); err != nil {
		log.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	if err := database.Seed(ctx, db, log); err != nil {
		log.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	locations := repository.NewLocationRepository(db, log)
	barbers := repository.NewBarberRepository(db, log)
	services := repository.NewServiceRepository(db, log)
	appointments := repository.NewAppointmentRepository(db, log)

	checker := health.NewChecker(log)
	checker.AddCheck("postgres", health.DBCheck{DB: db})

	var (
		store   assistant.Store
		cache   *booking.CatalogCache
		queue   jobs.Manager
		worker  *jobs.Worker
		limiter ratelimit.Limiter
	)

	if cfg.Redis.Enabled {
		redisClient, err := redispkg.New(ctx, redispkg.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		shutdown.Register("redis", func(context.Context) error { return redisClient.Close() })
		checker.AddCheck("redis", health.RedisCheck{Client: redisClient.Client})

		store = assistant.NewRedisStore(redisClient.Client, log, cfg.Sessions.TTL)
		cache = booking.NewCatalogCache(redisClient.Client, 5*time.Minute)
		limiter = ratelimit.NewRedisLimiter(redisClient.Client, log)

		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		queue = jobs.NewManager(redisOpt, log)
		shutdown.Register("job queue", func(context.Context) error { return queue.Close() })

		worker = jobs.NewWorker(redisOpt, map[string]int{
			jobs.QueueCritical: 6,
			jobs.QueueDefault:  3,
			jobs.QueueLow:      1,
		}, log)
		worker.RegisterHandler(
			jobs.TaskTypeConfirmationEmail,
			handlers.NewConfirmationEmail(email.NewSMTPSender(cfg.Email, log), log),
		)
		go func() {
			if err := worker.Run(); err != nil {
				log.Error("job worker stopped", "error", err)
			}
		}()
		shutdown.Register("job worker", func(context.Context) error {
			worker.Shutdown()
			return nil
		})
	} else {
		memStore := assistant.NewMemoryStore()
		store = memStore

		cleaner := assistant.NewCleaner(memStore, log, cfg.Sessions.TTL, cfg.Sessions.SweepInterval)
		go cleaner.Run(ctx)

		go trackActiveSessions(ctx, memStore)

		memLimiter := ratelimit.NewMemoryLimiter()
		limiter = memLimiter
		go sweepLimiter(ctx, memLimiter)

		log.Info("redis disabled, using in-memory session store")
	}

	bookingService := booking.NewService(locations, barbers, services, appointments, cache, queue, log)

	manager := assistant.NewManager(bookingService, log, cfg.Shop.Phone)
	chatAssistant := assistant.New(store, manager, log)

	if !cfg.RateLimit.Enabled {
		limiter = nil
	}

	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)

	api := httpapi.NewServer(httpapi.Options{
		Assistant:      chatAssistant,
		Booking:        bookingService,
		Locations:      locations,
		Barbers:        barbers,
		Services:       services,
		Appointments:   appointments,
		Checker:        checker,
		Errors:         errHandler,
		Log:            log,
		ChatLimiter:    limiter,
		ChatRateLimit:  cfg.RateLimit.Requests,
		ChatRateWindow: cfg.RateLimit.Window,
	})

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Sentry.Enabled {
		shutdown.Register("sentry", func(context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		})
	}

	server := graceful.NewServer(log, httpServer, shutdownTimeout)
	if err := server.ListenAndServe(ctx); err != nil {
		log.Error("http server exited with error", "error", err)
	}

	if err := shutdown.Run(shutdownTimeout); err != nil {
		log.Error("shutdown finished with errors", "error", err)
	}

	log.Info("shearbook server stopped")
}

// trackActiveSessions publishes the live session count while the in-memory
// store is in use. The redis store relies on key TTLs instead.
func trackActiveSessions(ctx context.Context, store *assistant.MemoryStore) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SetActiveSessions(store.Len())
		}
	}
}

func sweepLimiter(ctx context.Context, limiter *ratelimit.MemoryLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep(time.Hour)
		}
	}
}
