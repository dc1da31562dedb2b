package observability

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// PublisherWithTracing injects the active trace context into every published
// message's metadata, so evaluation and delivery of one change event show up
// as a single trace across the outbox hop.
type PublisherWithTracing struct {
	message.Publisher
}

func (p PublisherWithTracing) Publish(topic string, messages ...*message.Message) error {
	propagator := otel.GetTextMapPropagator()
	for _, msg := range messages {
		propagator.Inject(msg.Context(), propagation.MapCarrier(msg.Metadata))
	}

	return p.Publisher.Publish(topic, messages...)
}
