package message

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"changegate/internal/interfaces/message/events"
)

// NewRouter wires the change-capture feed into the evaluation handler. The
// outbox forwarder runs separately, it only shares the stream publisher.
func NewRouter(
	watermillLogger watermill.LoggerAdapter,
	changeStreamTopic string,
	changeStreamSubscriber wmessage.Subscriber,
	eventHandler *events.Handler,
) (*wmessage.Router, error) {
	router, err := wmessage.NewRouter(wmessage.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, err
	}

	initMiddlewares(watermillLogger, router)

	router.AddNoPublisherHandler(
		"change_visibility_evaluator",
		changeStreamTopic,
		changeStreamSubscriber,
		eventHandler.HandleWALMessage,
	)

	return router, nil
}

func initMiddlewares(watermillLogger watermill.LoggerAdapter, router *wmessage.Router) {
	router.AddMiddleware(events.TracingMiddleware)
	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(events.CorrelationIDMiddleware)
	router.AddMiddleware(events.LoggingMiddleware)

	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	// skip marshalling errors before retrying
	router.AddMiddleware(events.SkipMarshallingErrorsMiddleware)
	router.AddMiddleware(events.MetricsMiddleware)
}
