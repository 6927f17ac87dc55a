package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"annonsplats/internal/config"
	"annonsplats/internal/handler"
	"annonsplats/internal/middleware"
	"annonsplats/internal/pkg/i18n"
	"annonsplats/internal/realtime"
	"annonsplats/internal/repository"
	"annonsplats/internal/service"
	"annonsplats/internal/service/profile"
)

const sessionSweepInterval = time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := i18n.Load(); err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	db, err := config.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		version, err := config.RunMigrations(db)
		if err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Database schema ready", zap.Uint("version", version))
	}

	redisClient, err := config.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	var store profile.ObjectStore
	minioClient, err := config.NewMinIOClient(ctx, cfg, logger)
	if err != nil {
		logger.Warn("Failed to connect to MinIO, avatar upload will not work", zap.Error(err))
	} else {
		store = minioClient
	}

	broker := realtime.NewRedisBroker(redisClient)
	defer broker.Close()

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, redisClient, store, broker, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to init services", zap.Error(err))
	}
	handlers := handler.NewHandlers(services, broker, logger)

	errHandler := middleware.NewErrorHandler(logger)
	app := fiber.New(fiber.Config{
		ErrorHandler: errHandler,
		BodyLimit:    profile.MaxAvatarSize + 1<<20,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger, errHandler))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.RegisterRoutes(app, handlers, services.Auth)

	go sweepSessions(ctx, repos.Session, logger)

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, draining connections")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Failed to shut down cleanly", zap.Error(err))
	}
}

func sweepSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.DeleteExpired(ctx)
			if err != nil {
				logger.Warn("Failed to delete expired sessions", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("Deleted expired sessions", zap.Int64("count", removed))
			}
		}
	}
}
