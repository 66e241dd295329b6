package handlers

import (
	"net/http"
	"time"

	"jobhunter/internal/logging"
	"jobhunter/internal/pipeline"
	"jobhunter/internal/search"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// FindJobsHandler handles metered job search requests
func FindJobsHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.FindJobsRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return bindError(c, requestID)
		}
		if err := validate.Struct(&req); err != nil {
			logger.Error("Request validation failed", map[string]interface{}{"error": err.Error()})
			return validateError(c, requestID, err)
		}

		logger.Info("Processing job search", map[string]interface{}{
			"profile_id": req.ProfileID,
			"keywords":   req.Keywords,
		})

		ctx := c.Request().Context()
		ranked, remaining, err := p.FindJobs(ctx, req.ProfileID, search.Criteria{
			Keywords:   req.Keywords,
			Location:   req.Location,
			Seniority:  req.Seniority,
			MaxResults: req.MaxResults,
		})
		if err != nil {
			logger.Error("Job search failed", map[string]interface{}{"error": err.Error()})
			return domainErrorResponse(c, requestID, err)
		}

		return c.JSON(http.StatusOK, models.FindJobsResponse{
			Jobs:           ranked,
			QuotaRemaining: remaining,
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		})
	}
}

// AnalyzeGapHandler handles compatibility analysis requests
func AnalyzeGapHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.AnalyzeGapRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return bindError(c, requestID)
		}
		if err := validate.Struct(&req); err != nil {
			return validateError(c, requestID, err)
		}

		analysis, err := p.AnalyzeGap(c.Request().Context(), req.ProfileID, req.JobID)
		if err != nil {
			logger.Error("Gap analysis failed", map[string]interface{}{"error": err.Error()})
			return domainErrorResponse(c, requestID, err)
		}

		return c.JSON(http.StatusOK, analysis)
	}
}

// TailorResumeHandler handles metered resume tailoring requests
func TailorResumeHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.TailorResumeRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return bindError(c, requestID)
		}
		if err := validate.Struct(&req); err != nil {
			return validateError(c, requestID, err)
		}

		doc, err := p.TailorResume(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Resume tailoring failed", map[string]interface{}{"error": err.Error()})
			return domainErrorResponse(c, requestID, err)
		}

		logger.Info("Resume tailored", map[string]interface{}{
			"profile_id": req.ProfileID,
			"job_id":     req.JobID,
			"confidence": doc.Confidence,
		})
		return c.JSON(http.StatusOK, doc)
	}
}

// CoverLetterHandler handles metered cover letter generation requests
func CoverLetterHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.CoverLetterRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return bindError(c, requestID)
		}
		if err := validate.Struct(&req); err != nil {
			return validateError(c, requestID, err)
		}

		letter, err := p.GenerateCoverLetter(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Cover letter generation failed", map[string]interface{}{"error": err.Error()})
			return domainErrorResponse(c, requestID, err)
		}

		logger.Info("Cover letter generated", map[string]interface{}{
			"profile_id": req.ProfileID,
			"job_id":     req.JobID,
			"tone":       string(letter.Tone),
		})
		return c.JSON(http.StatusOK, letter)
	}
}

// BatchApplyHandler handles threshold-gated batch application requests
func BatchApplyHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.BatchApplyRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return bindError(c, requestID)
		}
		if err := validate.Struct(&req); err != nil {
			return validateError(c, requestID, err)
		}

		logger.Info("Processing batch apply", map[string]interface{}{
			"profile_id": req.ProfileID,
			"keywords":   req.Keywords,
		})

		result, err := p.BatchApply(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Batch apply failed", map[string]interface{}{"error": err.Error()})
			return domainErrorResponse(c, requestID, err)
		}

		logger.Info("Batch apply finished", map[string]interface{}{
			"applied":  len(result.Applications),
			"failed":   len(result.Errors),
			"skipped":  result.Skipped,
			"duration": utils.FormatDuration(time.Since(startTime)),
		})
		return c.JSON(http.StatusOK, result)
	}
}
