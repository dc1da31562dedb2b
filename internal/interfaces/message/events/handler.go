package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"

	"changegate/internal/entities"
	"changegate/internal/idempotency"
)

//go:generate mockgen -destination=mocks/mock_change_evaluator.go -package=mocks changegate/internal/interfaces/message/events ChangeEvaluator
type ChangeEvaluator interface {
	HandleChange(ctx context.Context, event *entities.ChangeEvent) error
}

type Handler struct {
	evaluator ChangeEvaluator
}

func NewHandler(evaluator ChangeEvaluator) *Handler {
	return &Handler{evaluator: evaluator}
}

// HandleWALMessage consumes one raw change-capture message. Malformed
// payloads are skipped (the feed is append-only, redelivery cannot fix
// them), and events naming a relation that no longer exists are surfaced and
// dropped so they do not poison the stream for other events.
func (h *Handler) HandleWALMessage(msg *message.Message) error {
	var event entities.ChangeEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("%w: %s", ErrJsonUnmarshal, err)
	}

	ctx := idempotency.WithKey(msg.Context(), msg.UUID)

	err := h.evaluator.HandleChange(ctx, &event)
	if errors.Is(err, entities.ErrEntityNotFound) {
		log.FromContext(ctx).
			WithField("entity", event.Entity().String()).
			WithField("error", err).
			Error("Change event does not resolve to an existing relation, dropping")
		return nil
	}

	return err
}
