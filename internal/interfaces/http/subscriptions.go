package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"changegate/internal/entities"
	"changegate/internal/repository"
)

//go:generate mockgen -destination=mocks/mock_subscriptions_service.go -package=mocks changegate/internal/interfaces/http SubscriptionsService
type SubscriptionsService interface {
	Create(ctx context.Context, userID string, entity entities.Entity, filters []entities.Filter) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, filters []entities.Filter) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	ListForEntity(ctx context.Context, entity entities.Entity) ([]entities.Subscription, error)
}

type FilterRequest struct {
	ColumnName string `json:"column_name"`
	Op         string `json:"op"`
	Value      string `json:"value"`
}

type CreateSubscriptionRequest struct {
	UserID  string          `json:"user_id"`
	Schema  string          `json:"schema"`
	Table   string          `json:"table"`
	Filters []FilterRequest `json:"filters"`
}

type CreateSubscriptionResponse struct {
	ID uuid.UUID `json:"subscription_id"`
}

type UpdateSubscriptionRequest struct {
	Filters []FilterRequest `json:"filters"`
}

type SubscriptionResponse struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	Schema    string          `json:"schema"`
	Table     string          `json:"table"`
	Filters   []FilterRequest `json:"filters"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s *Server) CreateSubscriptionHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var request CreateSubscriptionRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	id, err := s.subscriptionsService.Create(ctx,
		request.UserID,
		entities.Entity{Schema: request.Schema, Name: request.Table},
		filtersFromRequest(request.Filters),
	)
	if err != nil {
		return subscriptionWriteError(err)
	}

	return c.JSON(http.StatusCreated, CreateSubscriptionResponse{ID: id})
}

func (s *Server) UpdateSubscriptionHandler(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription id")
	}

	var request UpdateSubscriptionRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if err := s.subscriptionsService.Update(ctx, id, filtersFromRequest(request.Filters)); err != nil {
		return subscriptionWriteError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteSubscriptionHandler(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription id")
	}

	err = s.subscriptionsService.Delete(ctx, id)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "subscription not found")
	}
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteUserSubscriptionsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	deleted, err := s.subscriptionsService.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

func (s *Server) ListSubscriptionsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	entity := entities.Entity{
		Schema: c.QueryParam("schema"),
		Name:   c.QueryParam("table"),
	}
	if entity.Schema == "" || entity.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "schema and table are required")
	}

	subs, err := s.subscriptionsService.ListForEntity(ctx, entity)
	if err != nil {
		return err
	}

	response := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		response = append(response, SubscriptionResponse{
			ID:        sub.ID,
			UserID:    sub.UserID,
			Schema:    sub.Entity.Schema,
			Table:     sub.Entity.Name,
			Filters:   filtersToResponse(sub.Filters),
			CreatedAt: sub.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, response)
}

func filtersFromRequest(filters []FilterRequest) []entities.Filter {
	out := make([]entities.Filter, 0, len(filters))
	for _, f := range filters {
		out = append(out, entities.Filter{
			ColumnName: f.ColumnName,
			Op:         f.Op,
			Value:      f.Value,
		})
	}
	return out
}

func filtersToResponse(filters []entities.Filter) []FilterRequest {
	out := make([]FilterRequest, 0, len(filters))
	for _, f := range filters {
		out = append(out, FilterRequest{
			ColumnName: f.ColumnName,
			Op:         f.Op,
			Value:      f.Value,
		})
	}
	return out
}

// subscriptionWriteError maps domain failures of the write path onto HTTP
// statuses: unknown entity is a bad request, a rejected filter is
// unprocessable, everything else stays a 500.
func subscriptionWriteError(err error) error {
	var validationErr *entities.FilterValidationError
	switch {
	case errors.Is(err, entities.ErrEntityNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "entity does not exist")
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, validationErr.Error())
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "subscription not found")
	default:
		return err
	}
}
