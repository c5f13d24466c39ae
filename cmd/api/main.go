package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lms-service/internal/api/http"
	"github.com/spec-kit/lms-service/internal/api/http/handlers"
	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/bootstrap"
	"github.com/spec-kit/lms-service/internal/config"
	"github.com/spec-kit/lms-service/internal/events"
	"github.com/spec-kit/lms-service/internal/observability"
	"github.com/spec-kit/lms-service/internal/persistence"
	"github.com/spec-kit/lms-service/internal/repository"
	"github.com/spec-kit/lms-service/internal/service"
	"github.com/spec-kit/lms-service/internal/worker"
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

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, mongo.DB(), logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	db := mongo.DB()
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	if err := bootstrap.EnsureAdmin(ctx, *cfg, userRepo, logger); err != nil {
		logger.Fatal("failed to bootstrap admin", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	userService := service.NewUserService(*cfg, userRepo)
	courseService := service.NewCourseService(courseRepo, dispatcher)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, dispatcher)
	progressService := service.NewProgressService(progressRepo, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Courses:        handlers.NewCoursesHandler(courseService),
		Enrollments:    handlers.NewEnrollmentsHandler(enrollmentService),
		Progress:       handlers.NewProgressHandler(progressService, enrollmentService),
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
