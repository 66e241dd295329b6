package routes

import (
	"jobhunter/internal/api/handlers"
	"jobhunter/internal/api/middleware"
	"jobhunter/internal/config"
	"jobhunter/internal/pipeline"
	"jobhunter/internal/scheduler"
	"jobhunter/internal/search"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, p *pipeline.Pipeline, chain *search.Chain, resets *scheduler.ResetScheduler) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler)
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(chain, resets))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Hunter routes
		v1.POST("/hunter/jobs/search", handlers.FindJobsHandler(p))
		v1.POST("/hunter/jobs/analyze", handlers.AnalyzeGapHandler(p))
		v1.POST("/hunter/resume/tailor", handlers.TailorResumeHandler(p))
		v1.POST("/hunter/cover-letter", handlers.CoverLetterHandler(p))
		v1.POST("/hunter/batch-apply", handlers.BatchApplyHandler(p))

		// Application lifecycle routes
		v1.POST("/applications", handlers.SubmitApplicationHandler(p))
		v1.GET("/applications", handlers.ListApplicationsHandler(p))
		v1.GET("/applications/stats", handlers.ApplicationStatsHandler(p))
		v1.POST("/applications/:id/interview", handlers.ScheduleInterviewHandler(p))
		v1.POST("/applications/:id/offer", handlers.RecordOfferHandler(p))
		v1.POST("/applications/:id/reject", handlers.RejectApplicationHandler(p))

		// Entitlement routes
		v1.GET("/profiles/:id/entitlements", handlers.EntitlementsHandler(p))
		v1.POST("/profiles/:id/entitlements/reset", handlers.ResetCountersHandler(p))

		// Catalog routes
		v1.GET("/plans", handlers.PlansHandler())
		v1.GET("/personas", handlers.PersonasHandler())
	}
}
