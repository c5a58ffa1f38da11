package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/studytrack-io/studytrack/internal/config"
	repoPostgres "github.com/studytrack-io/studytrack/internal/domain/repository/postgres"
	httpHandler "github.com/studytrack-io/studytrack/internal/handler/http"
	infraPostgres "github.com/studytrack-io/studytrack/internal/infrastructure/database/postgres"
	infraRedis "github.com/studytrack-io/studytrack/internal/infrastructure/database/redis"
	"github.com/studytrack-io/studytrack/internal/infrastructure/ratelimit"
	"github.com/studytrack-io/studytrack/internal/infrastructure/security"
	"github.com/studytrack-io/studytrack/internal/service"
	"github.com/studytrack-io/studytrack/internal/utils/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if cfg.Database.AutoMigrate {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := infraPostgres.NewDBPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize PostgreSQL connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	userRepo := repoPostgres.NewUserRepositoryPostgres(dbPool)
	refreshTokenRepo := repoPostgres.NewRefreshTokenRepositoryPostgres(dbPool)
	subjectRepo := repoPostgres.NewSubjectRepositoryPostgres(dbPool)
	taskRepo := repoPostgres.NewTaskRepositoryPostgres(dbPool)
	sessionRepo := repoPostgres.NewStudySessionRepositoryPostgres(dbPool)

	passwordService, err := security.NewBcryptPasswordService(cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal("Failed to initialize password service", zap.Error(err))
	}
	tokenService, err := security.NewJWTService(cfg.JWT)
	if err != nil {
		log.Fatal("Failed to initialize token service", zap.Error(err))
	}

	var rateLimiter = ratelimit.NoopRateLimiter()
	if cfg.Auth.RateLimiting.Enabled {
		redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize Redis client", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = ratelimit.NewRedisRateLimiter(redisClient, log)
	}

	authService, err := service.NewAuthService(userRepo, refreshTokenRepo, tokenService, passwordService, rateLimiter, cfg.Auth, log)
	if err != nil {
		log.Fatal("Failed to initialize auth service", zap.Error(err))
	}
	userService := service.NewUserService(userRepo)
	subjectService := service.NewSubjectService(subjectRepo, taskRepo, log)
	studyService := service.NewStudySessionService(sessionRepo, subjectRepo)
	reportService := service.NewReportService(sessionRepo, subjectRepo)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthService:    authService,
		UserService:    userService,
		SubjectService: subjectService,
		StudyService:   studyService,
		ReportService:  reportService,
		TokenService:   tokenService,
		Config:         cfg,
		Logger:         log,
		Readiness: func() error {
			return dbPool.Ping(context.Background())
		},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}

func runMigrations(cfg *config.Config, log *zap.Logger) error {
	log.Info("Running database migrations")
	migrationURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.Database.User), url.QueryEscape(cfg.Database.Password),
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)

	m, err := migrate.New(cfg.Database.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("Migrations applied")
	return nil
}
