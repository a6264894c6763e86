package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/salon-booking-service/internal/api/http"
	"github.com/spec-kit/salon-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/salon-booking-service/internal/auth"
	"github.com/spec-kit/salon-booking-service/internal/booking"
	"github.com/spec-kit/salon-booking-service/internal/catalog"
	"github.com/spec-kit/salon-booking-service/internal/config"
	"github.com/spec-kit/salon-booking-service/internal/events"
	"github.com/spec-kit/salon-booking-service/internal/observability"
	"github.com/spec-kit/salon-booking-service/internal/persistence"
	"github.com/spec-kit/salon-booking-service/internal/repository"
	"github.com/spec-kit/salon-booking-service/internal/schedule"
	"github.com/spec-kit/salon-booking-service/internal/service"
	"github.com/spec-kit/salon-booking-service/internal/worker"
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

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()

	persister := persistence.NewAppointmentPersister(redis, cfg.Redis.AppointmentsKey, logger)
	store := repository.NewAppointmentStore(persister, dispatcher, logger)
	store.Load(ctx)

	if pool != nil {
		remote := repository.NewRemoteAppointmentSource(pool)
		if appointments, err := remote.FetchAppointments(ctx); err != nil {
			logger.Warn("remote appointment fetch failed; continuing on local data", zap.Error(err))
		} else {
			store.Reconcile(ctx, appointments)
		}
	}

	var catalogProvider catalog.Provider = catalog.NewStaticProvider()
	if pool != nil {
		catalogProvider = catalog.NewPostgresProvider(pool)
	}

	checker := schedule.NewChecker(cfg.BusinessHours)

	bookingService := service.NewBookingService(service.BookingDependencies{
		Catalog: catalogProvider,
		Store:   store,
		Checker: checker,
		Metrics: metrics,
		Logger:  logger,
	})
	authService := service.NewAuthService(cfg.Auth)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessionManager := booking.NewManager(checker, store)
	adminMiddleware := auth.NewAdminMiddleware(authService.TokenManager())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Catalog:         handlers.NewCatalogHandler(catalogProvider),
		Appointments:    handlers.NewAppointmentsHandler(bookingService),
		Availability:    handlers.NewAvailabilityHandler(bookingService),
		Wizard:          handlers.NewWizardHandler(sessionManager, catalogProvider),
		Edit:            handlers.NewEditHandler(sessionManager, bookingService),
		Admin:           handlers.NewAdminHandler(authService, bookingService),
		AdminMiddleware: adminMiddleware,
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
