package handlers

import (
	"net/http"

	"jobhunter/internal/docgen"
	"jobhunter/internal/license"
	"jobhunter/internal/logging"
	"jobhunter/internal/pipeline"
	"jobhunter/pkg/utils"

	"github.com/labstack/echo/v4"
)

// EntitlementsHandler returns the live quota snapshot for a profile
func EntitlementsHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		entitlements, err := p.Entitlements(c.Request().Context(), c.Param("id"))
		if err != nil {
			return domainErrorResponse(c, requestID, err)
		}
		return c.JSON(http.StatusOK, entitlements)
	}
}

// ResetCountersHandler zeroes the periodic quota counters for a profile
func ResetCountersHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		profileID := c.Param("id")
		if err := p.ResetCounters(c.Request().Context(), profileID); err != nil {
			logger.Error("Counter reset failed", map[string]interface{}{
				"profile_id": profileID,
				"error":      err.Error(),
			})
			return domainErrorResponse(c, requestID, err)
		}

		logger.Info("Counters reset", map[string]interface{}{"profile_id": profileID})
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":     "reset",
			"profile_id": profileID,
		})
	}
}

// PlansHandler returns the full tier catalog
func PlansHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		plans := make(map[string]license.Plan)
		for _, tier := range license.Tiers() {
			plan, _ := license.GetPlan(tier)
			plans[tier] = plan
		}
		return c.JSON(http.StatusOK, plans)
	}
}

// PersonasHandler returns the fixed persona catalog
func PersonasHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"personas": docgen.Personas(),
		})
	}
}
