package handlers

import (
	"errors"
	"net/http"
	"time"

	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"

	"github.com/labstack/echo/v4"
)

// domainErrorResponse maps the typed domain errors onto HTTP responses.
// Anything unrecognized is treated as an internal failure.
func domainErrorResponse(c echo.Context, requestID string, err error) error {
	timestamp := time.Now()

	var validation *utils.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "validation_failed",
			Message:   validation.Error(),
			RequestID: requestID,
			Timestamp: timestamp,
		})
	}

	var notFound *utils.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
			Details: map[string]any{
				"kind": notFound.Kind,
				"id":   notFound.ID,
			},
			RequestID: requestID,
			Timestamp: timestamp,
		})
	}

	var quota *utils.QuotaExceededError
	if errors.As(err, &quota) {
		return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:   "quota_exceeded",
			Message: quota.Error(),
			Details: map[string]any{
				"feature": quota.Feature,
				"limit":   quota.Limit,
				"used":    quota.Used,
			},
			RequestID: requestID,
			Timestamp: timestamp,
		})
	}

	var notAvailable *utils.FeatureNotAvailableError
	if errors.As(err, &notAvailable) {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "feature_not_available",
			Message: notAvailable.Error(),
			Details: map[string]any{
				"feature": notAvailable.Feature,
				"tier":    notAvailable.Tier,
			},
			RequestID: requestID,
			Timestamp: timestamp,
		})
	}

	var provider *utils.ProviderError
	if errors.As(err, &provider) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:     "provider_failed",
			Message:   provider.Error(),
			RequestID: requestID,
			Timestamp: timestamp,
		})
	}

	var lifecycle *utils.LifecycleError
	if errors.As(err, &lifecycle) {
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "invalid_transition",
			Message: lifecycle.Error(),
			Details: map[string]any{
				"from": lifecycle.From,
				"to":   lifecycle.To,
			},
			RequestID: requestID,
			Timestamp: timestamp,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "internal_error",
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: timestamp,
	})
}

// bindError is the standard response for a malformed request body.
func bindError(c echo.Context, requestID string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "invalid_request",
		Message:   "Invalid request format",
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

// validateError is the standard response for a payload failing validation.
func validateError(c echo.Context, requestID string, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "validation_failed",
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
