// @title LMS Quiz API
// @version 1.0
// @description Quiz sessions, grading and attempt history for course modules.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "lms-quiz/cmd/api/docs"
	"lms-quiz/internal/adapter"
	"lms-quiz/internal/adapter/event"
	"lms-quiz/internal/adapter/feedback"
	"lms-quiz/internal/cache"
	"lms-quiz/internal/catalog"
	"lms-quiz/internal/config"
	"lms-quiz/internal/database"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/handler"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/middleware"
	"lms-quiz/internal/repository"
	"lms-quiz/internal/service"
	"lms-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXOracleDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("RedisCacheAdapter initialized")

	var source domain.QuizCatalog
	switch cfg.Catalog.Source {
	case config.CatalogSourceDatabase:
		source = repository.NewQuizCatalogDatabaseAdapter(db)
	default:
		source = catalog.NewFileCatalog(cfg.Catalog.Path)
	}
	appLogger.Info("Quiz catalog source selected", zap.String("source", cfg.Catalog.Source))

	publisher := event.NewNoopPublisher()
	if cfg.Events.AMQPURL != "" {
		amqpPublisher, err := event.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			appLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	var advisor domain.FeedbackAdvisor
	if cfg.Feedback.Enabled {
		advisor, err = feedback.NewOllamaFeedbackAdvisor(cfg.Feedback.ServerURL, cfg.Feedback.Model, cfg.Feedback.Timeout)
		if err != nil {
			appLogger.Fatal("Failed to create feedback advisor", zap.Error(err))
		}
		appLogger.Info("Short-answer feedback enabled", zap.String("model", cfg.Feedback.Model))
	}

	catalogService := service.NewCatalogService(source, cacheAdapter, cfg.Catalog.CacheTTL, cfg.Catalog.Strict)
	report, err := catalogService.Load(ctx)
	if err != nil {
		appLogger.Fatal("Failed to load quiz catalog", zap.Error(err))
	}
	appLogger.Info("Quiz catalog loaded", zap.Int("loaded", report.Loaded), zap.Strings("rejected", report.Rejected))

	attemptService := service.NewAttemptService(
		repository.NewSQLXQuizAttemptRepository(db),
		cacheAdapter,
		publisher,
		advisor,
		cfg.ResultCache.TTL,
	)
	sessionService := service.NewSessionService(catalogService, attemptService, cfg.Session)

	tokenService, err := service.NewTokenService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create TokenService", zap.Error(err))
	}

	binder := middleware.NewValidationMiddleware(validation.NewValidator())
	handlers := handler.Handlers{
		Quiz: handler.NewQuizHandler(catalogService, map[string]handler.HealthCheck{
			"database": db.PingContext,
			"redis":    cacheAdapter.Ping,
		}),
		Session:    handler.NewSessionHandler(sessionService, binder),
		Attempt:    handler.NewAttemptHandler(attemptService, binder),
		Validation: binder,
		Tokens:     tokenService,
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app.Group("/api"), handlers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})
	g.Go(func() error {
		return sessionService.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
	}
	sessionService.Shutdown()
	appLogger.Info("Server exited gracefully")
}
