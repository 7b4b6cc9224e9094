package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hall-booking-service/internal/api/http"
	"github.com/spec-kit/hall-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/hall-booking-service/internal/auth"
	"github.com/spec-kit/hall-booking-service/internal/config"
	"github.com/spec-kit/hall-booking-service/internal/events"
	"github.com/spec-kit/hall-booking-service/internal/observability"
	"github.com/spec-kit/hall-booking-service/internal/persistence"
	"github.com/spec-kit/hall-booking-service/internal/repository"
	"github.com/spec-kit/hall-booking-service/internal/service"
	"github.com/spec-kit/hall-booking-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	hallRepo := repository.NewCachedHallRepository(
		repository.NewHallRepository(pool),
		redis.Client,
		cfg.Booking.HallCacheTTL(),
		logger,
	)
	bookingRepo := repository.NewBookingRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		HallRepo:    hallRepo,
		BookingRepo: bookingRepo,
		Slots:       cfg.Booking.Slots,
		Dispatcher:  dispatcher,
	})
	adminService := service.NewAdminService(userRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService)
	hallOwnerHandler := handlers.NewHallOwnerHandler(bookingService)
	adminUsersHandler := handlers.NewAdminUsersHandler(adminService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		HallOwner:      hallOwnerHandler,
		AdminUsers:     adminUsersHandler,
		AuthMiddleware: authMiddleware,
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
