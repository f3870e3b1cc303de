package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/membership-service/internal/api/http"
	"github.com/spec-kit/membership-service/internal/api/http/handlers"
	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/config"
	"github.com/spec-kit/membership-service/internal/events"
	"github.com/spec-kit/membership-service/internal/mailer"
	"github.com/spec-kit/membership-service/internal/observability"
	"github.com/spec-kit/membership-service/internal/persistence"
	"github.com/spec-kit/membership-service/internal/ratelimit"
	"github.com/spec-kit/membership-service/internal/repository"
	"github.com/spec-kit/membership-service/internal/service"
	"github.com/spec-kit/membership-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	formRepo := repository.NewFormRepository(pool)
	personRepo := repository.NewPersonRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	brevo := mailer.NewBrevo(cfg.Email, logger)

	authService := service.NewAuthService(cfg.Auth, userRepo, logger)
	membershipService := service.NewMembershipService(formRepo, personRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, brevo, logger)
	worker.StartNotificationWorker(notificationService)

	guard := auth.NewSessionGuard(authService.TokenManager())
	limiter := ratelimit.NewLoginLimiter(redis.ClientHandle(), cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Pages:         handlers.NewPagesHandler(cfg.App.Name),
		Auth:          handlers.NewAuthHandler(authService, limiter, metrics, cfg.App.IsProduction()),
		Forms:         handlers.NewFormsHandler(membershipService, metrics),
		Members:       handlers.NewMembersHandler(membershipService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Guard:         guard,
		Metrics:       metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
