package handlers

import (
	"net/http"

	"jobhunter/internal/logging"
	"jobhunter/internal/pipeline"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"

	"github.com/labstack/echo/v4"
)

// transitionRequest carries the optional note attached to a status change.
type transitionRequest struct {
	Note string `json:"note,omitempty"`
}

// SubmitApplicationHandler handles single application submissions
func SubmitApplicationHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.SubmitApplicationRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return bindError(c, requestID)
		}
		if err := validate.Struct(&req); err != nil {
			return validateError(c, requestID, err)
		}

		app, err := p.SubmitApplication(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Application submission failed", map[string]interface{}{"error": err.Error()})
			return domainErrorResponse(c, requestID, err)
		}

		return c.JSON(http.StatusCreated, app)
	}
}

// ListApplicationsHandler returns all stored applications
func ListApplicationsHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		apps, err := p.ListApplications(c.Request().Context())
		if err != nil {
			return domainErrorResponse(c, requestID, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"applications": apps,
			"count":        len(apps),
		})
	}
}

// ApplicationStatsHandler returns aggregated submission counts
func ApplicationStatsHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		stats, err := p.ApplicationStats(c.Request().Context())
		if err != nil {
			return domainErrorResponse(c, requestID, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}

// transitionHandler is the shared shape of the three lifecycle endpoints.
func transitionHandler(
	name string,
	apply func(p *pipeline.Pipeline, c echo.Context, id, note string) (*models.ApplicationSubmission, error),
	p *pipeline.Pipeline,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		applicationID := c.Param("id")

		var req transitionRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, requestID)
		}

		app, err := apply(p, c, applicationID, req.Note)
		if err != nil {
			logger.Error("Application transition failed", map[string]interface{}{
				"transition":     name,
				"application_id": applicationID,
				"error":          err.Error(),
			})
			return domainErrorResponse(c, requestID, err)
		}

		logger.Info("Application transitioned", map[string]interface{}{
			"transition":     name,
			"application_id": app.ID,
			"status":         string(app.Status),
		})
		return c.JSON(http.StatusOK, app)
	}
}

// ScheduleInterviewHandler moves an application to interviewing
func ScheduleInterviewHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return transitionHandler("interview", func(p *pipeline.Pipeline, c echo.Context, id, note string) (*models.ApplicationSubmission, error) {
		return p.ScheduleInterview(c.Request().Context(), id, note)
	}, p)
}

// RecordOfferHandler moves an application to the terminal offer state
func RecordOfferHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return transitionHandler("offer", func(p *pipeline.Pipeline, c echo.Context, id, note string) (*models.ApplicationSubmission, error) {
		return p.RecordOffer(c.Request().Context(), id, note)
	}, p)
}

// RejectApplicationHandler moves an application to the terminal rejected state
func RejectApplicationHandler(p *pipeline.Pipeline) echo.HandlerFunc {
	return transitionHandler("reject", func(p *pipeline.Pipeline, c echo.Context, id, note string) (*models.ApplicationSubmission, error) {
		return p.Reject(c.Request().Context(), id, note)
	}, p)
}
