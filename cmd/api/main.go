package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finhealth/internal/analytics"
	"github.com/Dan9191/finhealth/internal/cache"
	"github.com/Dan9191/finhealth/internal/config"
	"github.com/Dan9191/finhealth/internal/handler"
	"github.com/Dan9191/finhealth/internal/integrations/keyrate"
	"github.com/Dan9191/finhealth/internal/repository"
	"github.com/Dan9191/finhealth/internal/scheduler"
	"github.com/Dan9191/finhealth/internal/service"
	"github.com/Dan9191/finhealth/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load reference tables
	tables, err := analytics.LoadDefaultTables()
	if err != nil {
		logger.Fatalf("Failed to load reference tables: %v", err)
	}
	assessor, err := analytics.NewAssessor(tables, cfg.Assumptions, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize assessor: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	deps := service.Dependencies{
		Repo:     repository.NewRepository(db),
		Assessor: assessor,
		Notifier: email.NewSender(cfg, logger),
	}
	if cfg.KeyRateURL != "" {
		deps.Rates = keyrate.NewClient(cfg, logger)
	} else {
		logger.Info("KEY_RATE_URL not set, reference rates disabled")
	}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		reportCache := cache.NewReportCache(client, cfg.ReportCacheTTL)
		if err := reportCache.Ping(context.Background()); err != nil {
			logger.Warnf("Redis unavailable, report cache disabled: %v", err)
		} else {
			deps.Cache = reportCache
		}
	}
	svc := service.NewService(deps, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Schedule anomaly scans
	scan, err := scheduler.NewAnomalyScan(cfg.AnomalyScanSchedule, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to schedule anomaly scan: %v", err)
	}
	scan.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	scan.Stop(ctx)
}
