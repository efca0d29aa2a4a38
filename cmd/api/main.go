package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/complainthub/complaint-service/internal/api/http"
	"github.com/complainthub/complaint-service/internal/api/http/handlers"
	"github.com/complainthub/complaint-service/internal/auth"
	"github.com/complainthub/complaint-service/internal/config"
	"github.com/complainthub/complaint-service/internal/events"
	"github.com/complainthub/complaint-service/internal/notify"
	"github.com/complainthub/complaint-service/internal/observability"
	"github.com/complainthub/complaint-service/internal/persistence"
	"github.com/complainthub/complaint-service/internal/repository"
	"github.com/complainthub/complaint-service/internal/service"
	"github.com/complainthub/complaint-service/internal/worker"
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

	mailer, err := notify.NewSMTPMailer(cfg.Mail)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	pool := pg.PoolHandle()
	complaintRepo := repository.NewComplaintRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	analyticsCache := service.NewRedisAnalyticsCache(redis, logger, 30*time.Second)

	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo:  complaintRepo,
		Dispatcher:     dispatcher,
		AnalyticsCache: analyticsCache,
	})
	authService := service.NewAuthService(cfg.Auth, adminRepo)
	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Admin:          handlers.NewAdminHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	notificationService.Flush()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
