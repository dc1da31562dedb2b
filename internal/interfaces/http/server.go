package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"changegate/internal/reporting"
)

type Server struct {
	e    *echo.Echo
	addr string

	subscriptionsService SubscriptionsService
	reportingLog         *reporting.Log
}

func NewServer(
	addr string,
	subscriptionsService SubscriptionsService,
	reportingLog *reporting.Log,
	routerIsRunning func() bool,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())

	srv := &Server{
		e:                    e,
		addr:                 addr,
		subscriptionsService: subscriptionsService,
		reportingLog:         reportingLog,
	}

	e.POST("/subscriptions", srv.CreateSubscriptionHandler)
	e.PUT("/subscriptions/:id", srv.UpdateSubscriptionHandler)
	e.DELETE("/subscriptions/:id", srv.DeleteSubscriptionHandler)
	e.DELETE("/subscriptions", srv.DeleteUserSubscriptionsHandler)
	e.GET("/subscriptions", srv.ListSubscriptionsHandler)

	e.GET("/evaluations", srv.ListEvaluationsHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		if !routerIsRunning() {
			return c.String(http.StatusServiceUnavailable, "router is not running")
		}
		return c.String(http.StatusOK, "ok")
	})

	// logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log.FromContext(c.Request().Context()).
				WithField("path", c.Request().URL.Path).
				Info("Handling a request")

			err := next(c)

			if err != nil {
				log.FromContext(c.Request().Context()).
					WithField("error", err).
					Error("Request handling error")
			}

			return err
		}
	})

	return srv
}

func (s *Server) Start() error {
	err := s.e.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
