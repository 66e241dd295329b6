package handlers

import (
	"net/http"
	"time"

	"jobhunter/internal/logging"
	"jobhunter/internal/scheduler"
	"jobhunter/internal/search"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler handles readiness probe requests
func ReadinessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api":    "ok",
			"ledger": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status including the search
// provider's circuit breaker state and the quota reset scheduler
func StatusHandler(chain *search.Chain, resets *scheduler.ResetScheduler) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		logger.Debug("Status check requested", map[string]interface{}{"request_id": requestID})

		schedulerState := "stopped"
		if resets != nil && resets.IsHealthy() {
			schedulerState = "running"
		}

		response := models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":             "operational",
				"search_breaker":  chain.BreakerState().String(),
				"reset_scheduler": schedulerState,
			},
		}

		return c.JSON(http.StatusOK, response)
	}
}
