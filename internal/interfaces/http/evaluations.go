package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"changegate/internal/entities"
)

type EvaluationResponse struct {
	EvaluatedAt     time.Time                `json:"evaluated_at"`
	Record          entities.AnnotatedChange `json:"record"`
	IsRLSEnabled    bool                     `json:"is_rls_enabled"`
	SubscriptionIDs []string                 `json:"subscription_ids"`
	Errors          []string                 `json:"errors"`
}

// ListEvaluationsHandler serves the read-only reporting view of recently
// evaluated events.
func (s *Server) ListEvaluationsHandler(c echo.Context) error {
	entries := s.reportingLog.List()

	response := make([]EvaluationResponse, 0, len(entries))
	for _, entry := range entries {
		errs := make([]string, 0, len(entry.Result.Errors))
		for _, err := range entry.Result.Errors {
			errs = append(errs, err.Error())
		}

		response = append(response, EvaluationResponse{
			EvaluatedAt:     entry.EvaluatedAt,
			Record:          entry.Result.Annotated,
			IsRLSEnabled:    entry.Result.IsRLSEnabled,
			SubscriptionIDs: entry.Result.SubscriptionIDs,
			Errors:          errs,
		})
	}

	return c.JSON(http.StatusOK, response)
}
