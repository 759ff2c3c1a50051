package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authMiddleware "github.com/coursehub/media-service/internal/auth/middleware"
	authService "github.com/coursehub/media-service/internal/auth/service"
	"github.com/coursehub/media-service/internal/config"
	"github.com/coursehub/media-service/internal/handlers"
	"github.com/coursehub/media-service/internal/logger"
	"github.com/coursehub/media-service/internal/middlewares"
	"github.com/coursehub/media-service/internal/models"
	"github.com/coursehub/media-service/internal/repositories"
	"github.com/coursehub/media-service/internal/services"
	"github.com/coursehub/media-service/internal/storage"
	"github.com/coursehub/media-service/internal/transcode"

	_ "github.com/coursehub/media-service/docs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const maxRequestSize = 50 * 1024 * 1024 // 50MB for file uploads

const streamPath = "/api/v1/stream"

// @title CourseHub Media API
// @version 1.0
// @description Media ingestion, transcoding and access-gated delivery for course content

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for service-to-service authentication
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting CourseHub Media Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator (for auth middleware)
	tokenGenerator := authService.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize object storage
	objectStorage, err := storage.NewS3Storage(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.PublicDomain,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize transcoder
	transcoder := transcode.NewFFmpegTranscoder(cfg.Transcode.FFmpegPath, cfg.Transcode.Timeout)

	// Initialize repositories
	lessonRepo := repositories.NewLessonRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	assetRepo := repositories.NewAssetRepository(db)

	// Initialize services
	ingestService := services.NewIngestService(objectStorage, transcoder, assetRepo, cfg.UploadDir, logger.Logger)
	accessService := services.NewAccessService(lessonRepo, enrollmentRepo, cfg.Storage.PublicDomain, streamPath)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(ingestService, logger.Logger, cfg.UploadDir)
	contentHandler := handlers.NewContentHandler(accessService, logger.Logger)
	streamHandler := handlers.NewStreamHandler(
		&http.Client{Timeout: 0}, // streams may legitimately outlive any fixed timeout
		logger.Logger,
		cfg.Storage.PublicDomain,
	)

	// Initialize middleware
	authMw := authMiddleware.AuthMiddleware(tokenGenerator)
	optionalAuthMw := authMiddleware.OptionalAuthMiddleware(tokenGenerator)
	uploadAuthMw := authMiddleware.APIKeyOrRoleMiddleware(cfg.APIKey, tokenGenerator, models.RoleInstructor)

	// Setup router
	r := chi.NewRouter()
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", handlers.Health)

		// Lesson content - guests allowed, identity extracted when present
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMw)
			r.Get("/lessons/{id}/content", contentHandler.GetLessonContent)
		})

		// Streaming proxy - authenticated, rate limited (bandwidth protection)
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Use(httprate.LimitByIP(300, time.Minute))
			r.Get("/stream", streamHandler.Stream)
		})

		// Uploads - API key for service calls, instructor token for the console
		r.Group(func(r chi.Router) {
			r.Use(uploadAuthMw)
			r.Use(httprate.LimitByIP(30, time.Minute))
			r.Post("/uploads", uploadHandler.UploadFile)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
		// Transcoding runs inline in the upload request, so write timeouts
		// must cover the full encode+publish duration
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: cfg.Transcode.Timeout + 5*time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "media_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
