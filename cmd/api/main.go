package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kadro-api/internal/config"
	"github.com/kadro-api/internal/handler"
	"github.com/kadro-api/internal/importer"
	"github.com/kadro-api/internal/orgchart"
	"github.com/kadro-api/internal/repository"
	"github.com/kadro-api/internal/service"
)

const (
	connectAttempts = 30
	shutdownTimeout = 30 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("kadro api stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	profile, err := config.LoadProfile(cfg.RankingProfile)
	if err != nil {
		return err
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if err := repository.Migrate(sqlDB, cfg.Database.Dialect()); err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(db, cfg, orgchart.NewRanker(profile), logger).Setup(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is starting",
			slog.String("port", cfg.Server.Port),
			slog.String("db_driver", cfg.Database.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen on port %s: %w", cfg.Server.Port, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not gracefully shutdown the server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newRouter связывает репозитории, сервисы и хендлеры
func newRouter(db *gorm.DB, cfg *config.Config, ranker *orgchart.Ranker, logger *slog.Logger) *handler.Router {
	posRepo := repository.NewPositionRepository(db)
	tasraRepo := repository.NewTasraPositionRepository(db)
	personRepo := repository.NewPersonnelRepository(db)

	importService := service.NewImportService(
		posRepo, tasraRepo, personRepo,
		importer.NewEngine(ranker),
		cfg.Import.PreviewLimit,
		logger,
	)

	return handler.NewRouter(
		handler.NewPositionHandler(service.NewPositionService(posRepo, personRepo, ranker), logger),
		handler.NewTasraPositionHandler(service.NewTasraPositionService(tasraRepo, personRepo, ranker), logger),
		handler.NewPersonnelHandler(service.NewPersonnelService(personRepo, posRepo, tasraRepo, ranker), logger),
		handler.NewImportHandler(importService, cfg.Import.MaxUploadBytes, logger),
		logger,
	)
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	if cfg.Driver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}

	var db *gorm.DB
	var err error

	for range connectAttempts {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err == nil {
			sqlDB, _ := db.DB()
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
}
