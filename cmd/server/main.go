package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/studio-api/internal/api"
	"github.com/dom/studio-api/internal/config"
	"github.com/dom/studio-api/internal/logging"
	"github.com/dom/studio-api/internal/media"
	"github.com/dom/studio-api/internal/repository/postgres"
	"github.com/dom/studio-api/internal/service"
	"github.com/dom/studio-api/internal/token"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logFile := logging.Setup(logging.SetupParams{
		Level:      cfg.LogLevel,
		JSONFormat: cfg.LogJSON,
		FileName:   cfg.LogFile,
	})

	// Initialize database
	dbLogLevel := logger.Warn
	if cfg.IsDevelopment() {
		dbLogLevel = logger.Info
	}
	db, err := postgres.NewConnection(cfg.DatabaseURL, dbLogLevel)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get database handle: %v", err)
	}

	repos := postgres.NewRepositories(db)

	tokens, err := token.NewService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		log.Fatalf("failed to create token service: %v", err)
	}

	store, err := media.NewStore(cfg.UploadDir, cfg.UploadURLPrefix, media.NewThumbnailer(cfg.ThumbnailSize))
	if err != nil {
		log.Fatalf("failed to create media store: %v", err)
	}

	services := service.NewServices(repos, tokens, store)

	if cfg.SeedAdminEnabled() {
		created, err := services.Auth.SeedAdmin(context.Background(), service.RegisterInput{
			Username: cfg.SeedAdminUsername,
			Email:    cfg.SeedAdminEmail,
			Password: cfg.SeedAdminPassword,
		})
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		if created {
			log.WithField("username", cfg.SeedAdminUsername).Info("seeded initial admin")
		}
	}

	router := api.NewRouter(services, cfg, api.NewRegistry())

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server starting on port %s (%s)", cfg.Port, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = multierr.Combine(
		srv.Shutdown(ctx),
		sqlDB.Close(),
	)
	if logFile != nil {
		err = multierr.Append(err, logFile.Close())
	}
	if err != nil {
		log.Errorf("unclean shutdown: %v", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
