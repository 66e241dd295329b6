package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobhunter/internal/api/routes"
	"jobhunter/internal/config"
	"jobhunter/internal/license"
	"jobhunter/internal/logging"
	"jobhunter/internal/pipeline"
	"jobhunter/internal/scheduler"
	"jobhunter/internal/search"
	"jobhunter/internal/storage"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting job hunter service")

	// Quota ledger backend
	var ledger license.Ledger
	switch cfg.Ledger.Backend {
	case "redis":
		redisLedger, err := license.NewRedisLedgerFromURL(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout)
		if err != nil {
			logger.Fatal("Failed to connect to redis ledger", map[string]interface{}{"error": err.Error()})
		}
		defer redisLedger.Close()
		ledger = redisLedger
		logger.Info("Using redis quota ledger", map[string]interface{}{"url": cfg.Redis.URL})
	default:
		ledger = license.NewMemoryLedger()
		logger.Info("Using in-memory quota ledger")
	}

	// Repositories
	profiles := storage.NewMemoryProfileRepository()
	profiles.Seed(demoProfiles()...)
	jobs := storage.NewMemoryJobRepository()
	apps := storage.NewMemoryApplicationRepository()

	// Licensing engine resolves tiers through the profile repository
	resolver := license.TierResolverFunc(func(ctx context.Context, subject string) (string, error) {
		profile, err := profiles.Find(ctx, subject)
		if err != nil {
			return "", err
		}
		if profile == nil {
			return "", utils.NewNotFoundError("profile", subject)
		}
		return profile.Tier, nil
	})
	engine := license.NewEngine(ledger, resolver, logger)

	// Search provider chain: optional remote endpoint with an embedded
	// fallback catalog behind a rate limiter and circuit breaker
	fallback, err := search.NewFallbackSource()
	if err != nil {
		logger.Fatal("Failed to load fallback job catalog", map[string]interface{}{"error": err.Error()})
	}
	var primary search.Provider
	if cfg.Search.Endpoint != "" {
		primary = search.NewHTTPProvider("remote", cfg.Search.Endpoint, cfg.Search.Timeout)
	}
	limiter := search.NewProviderLimiter(cfg.Search.RateLimit, cfg.Search.MaxFailures, cfg.Search.ResetTimeout)
	chain := search.NewChain(primary, fallback, limiter, logger)

	// Orchestration pipeline
	p := pipeline.New(engine, chain, profiles, jobs, apps, pipeline.Options{
		AutoApplyThreshold: cfg.Pipeline.AutoApplyThreshold,
		MaxApplications:    cfg.Pipeline.MaxApplications,
		BatchWorkers:       cfg.Pipeline.BatchWorkers,
		MaxSearchResults:   cfg.Search.MaxResults,
	}, logger)

	// Monthly quota rollover sweeps
	resets := scheduler.NewResetScheduler(engine, profiles, logger, cfg.Pipeline.ResetSweepInterval)
	if err := resets.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start reset scheduler", map[string]interface{}{"error": err.Error()})
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, p, chain, resets)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resets.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping reset scheduler", map[string]interface{}{"error": err.Error()})
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}

// demoProfiles seeds one profile per tier so the service is usable out of
// the box.
func demoProfiles() []*models.Profile {
	return []*models.Profile{
		{
			ID:      "profile-free",
			Name:    "Dana Whitfield",
			Title:   "Software Engineer",
			Summary: "Backend engineer focused on Go services and data pipelines.",
			Tier:    license.TierFree,
			Skills: []models.Skill{
				{Name: "Go", Category: "language", Level: "advanced"},
				{Name: "PostgreSQL", Category: "database", Level: "intermediate"},
				{Name: "Docker", Category: "infrastructure", Level: "intermediate"},
			},
			ExperienceTitles: []string{"Software Engineer", "Junior Developer"},
		},
		{
			ID:      "profile-pro",
			Name:    "Marcus Lin",
			Title:   "Senior Software Engineer",
			Summary: "Senior engineer building distributed systems and cloud infrastructure.",
			Tier:    license.TierPro,
			Skills: []models.Skill{
				{Name: "Go", Category: "language", Level: "expert"},
				{Name: "Kubernetes", Category: "infrastructure", Level: "advanced"},
				{Name: "Redis", Category: "database", Level: "intermediate"},
				{Name: "gRPC", Category: "protocol", Level: "advanced"},
			},
			ExperienceTitles: []string{"Senior Software Engineer", "Software Engineer"},
		},
		{
			ID:      "profile-enterprise",
			Name:    "Priya Raman",
			Title:   "Staff Engineer",
			Summary: "Staff engineer leading platform architecture for high-scale systems.",
			Tier:    license.TierEnterprise,
			Skills: []models.Skill{
				{Name: "Go", Category: "language", Level: "expert"},
				{Name: "Kubernetes", Category: "infrastructure", Level: "expert"},
				{Name: "Kafka", Category: "messaging", Level: "advanced"},
				{Name: "Terraform", Category: "infrastructure", Level: "advanced"},
				{Name: "AWS", Category: "cloud", Level: "advanced"},
			},
			ExperienceTitles: []string{"Staff Engineer", "Senior Software Engineer", "Tech Lead"},
		},
	}
}
