package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lrocha/leetboard/internal/api"
	"github.com/lrocha/leetboard/internal/config"
	"github.com/lrocha/leetboard/internal/db"
	"github.com/lrocha/leetboard/internal/leetcode"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/repository/sqlite"
	"github.com/lrocha/leetboard/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Leetboard Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("leetcode_base_url=%s", cfg.LeetCodeBaseURL)
	log.Debug("fetch_timeout=%s", cfg.FetchTimeout)
	log.Debug("fetch_concurrency=%d", cfg.FetchConcurrency)
	log.Debug("max_batch_size=%d", cfg.MaxBatchSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	// Initialize services
	client := leetcode.New(
		leetcode.WithBaseURL(cfg.LeetCodeBaseURL),
		leetcode.WithTimeout(cfg.FetchTimeout),
	)
	statsService := services.NewStatsService(client, cfg.FetchConcurrency)
	rosterService := services.NewRosterService(sqlite.NewRosterRepository(database.DB))

	srv := &api.Server{
		DB:            database,
		StatsService:  statsService,
		RosterService: rosterService,
		Templates:     tmpl,
		StaticDir:     cfg.StaticDir,
		MaxBatchSize:  cfg.MaxBatchSize,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Leetboard Server Stopped")
	log.Info("===========================================")
}
