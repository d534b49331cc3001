package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Kryx404/gohealth/internal/api/http"
	"github.com/Kryx404/gohealth/internal/api/http/handlers"
	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/config"
	"github.com/Kryx404/gohealth/internal/events"
	"github.com/Kryx404/gohealth/internal/observability"
	"github.com/Kryx404/gohealth/internal/persistence"
	"github.com/Kryx404/gohealth/internal/repository"
	"github.com/Kryx404/gohealth/internal/service"
	"github.com/Kryx404/gohealth/internal/worker"
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
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	orderService := service.NewOrderService(orderRepo, dispatcher)
	dashboardService := service.NewDashboardService(orderRepo, userRepo, productRepo)
	wilayahService := service.NewWilayahService(cfg.Wilayah, redis, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Mail)
	worker.StartNotificationWorker(notificationService)

	sessions := auth.NewCookieSessionStore(cfg.Auth.SessionTTL())
	idle := auth.NewIdleMonitor(cfg.Auth.IdleTimeout(), logger)
	defer idle.Close()

	routeGuard := auth.NewRouteGuard(sessions, idle)
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), sessions, userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Guard:      routeGuard,
		Auth:       authMiddleware,
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		AuthH:      handlers.NewAuthHandler(authService, sessions, idle),
		Pages:      handlers.NewPagesHandler(catalogService, orderService, sessions),
		Products:   handlers.NewProductsHandler(catalogService),
		Categories: handlers.NewCategoriesHandler(catalogService),
		Orders:     handlers.NewOrdersHandler(orderService),
		Users:      handlers.NewUsersHandler(userService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		Wilayah:    handlers.NewWilayahHandler(wilayahService),
		Mail:       handlers.NewMailHandler(notificationService),
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
