package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/api"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/cfg"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/compliance"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting compliance monitor", "version", appCfg.Version)

	// Database connection
	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	slog.Info("Connected to database")

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	slog.Info("Migrations applied", "version", version, "dirty", dirty)

	// Repositories
	policyRepo := database.NewPolicyUpdateRepository(db)
	codeRepo := database.NewCodeRepository(db)
	alertRepo := database.NewAlertRepository(db)
	syncLogRepo := database.NewSyncLogRepository(db)

	// Canonical procedure-code list
	canonicalCodes, err := compliance.LoadCanonicalCodes()
	if err != nil {
		log.Fatal("Failed to load canonical code list:", err)
	}
	slog.Info("Canonical code list loaded", "codes", len(canonicalCodes))

	// Notification sink
	httpClient := &http.Client{Timeout: 30 * time.Second}
	var notifier compliance.Notifier = compliance.NoopNotifier{}
	if appCfg.WebhookURL != "" {
		notifier = compliance.NewWebhookNotifier(appCfg.WebhookURL, httpClient, appCfg.UserAgent)
		slog.Info("Notification webhook configured")
	} else {
		slog.Info("No notification webhook configured, alerts will not be paged")
	}
	alerts := compliance.NewAlertService(alertRepo, notifier)

	// Pipeline components
	parser := compliance.NewParser()
	orchestrator := compliance.NewOrchestrator(db, syncLogRepo,
		time.Duration(appCfg.AdapterTimeout)*time.Second)

	orchestrator.Register(compliance.NewCMSFeedAdapter(httpClient, parser, policyRepo, alerts, appCfg.UserAgent))
	orchestrator.Register(compliance.NewSAMHSAFeedAdapter(httpClient, parser, policyRepo, alerts, appCfg.UserAgent))
	orchestrator.Register(compliance.NewRegistryAdapter(canonicalCodes, codeRepo, alerts))
	orchestrator.RegisterConditional(
		compliance.NewLexisNexisAdapter(httpClient, policyRepo, alerts, appCfg.UserAgent),
		func() bool { return cfg.Get().LexisNexisEnabled() })
	orchestrator.RegisterConditional(
		compliance.NewComplianceAIAdapter(httpClient, policyRepo, alerts, appCfg.UserAgent),
		func() bool { return cfg.Get().ComplianceAIEnabled() })

	// Daily scheduler
	scheduler := compliance.NewScheduler(orchestrator, appCfg.SyncHourUTC)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	handler := api.NewHandler(policyRepo, alertRepo, syncLogRepo, orchestrator)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // manual sync trigger runs synchronously
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
