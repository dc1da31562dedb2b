package entities

import (
	"time"

	"github.com/google/uuid"
)

type Event interface {
	IsInternal() bool
}

type EventHeader struct {
	Id             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		Id:             uuid.NewString(),
		PublishedAt:    time.Now(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		Id:             uuid.NewString(),
		PublishedAt:    time.Now(),
		IdempotencyKey: idempotencyKey,
	}
}

// ChangeAnnotated_v1 carries the authorization-annotated copy of one change
// event to downstream fan-out consumers.
type ChangeAnnotated_v1 struct {
	Header EventHeader     `json:"header"`
	Change AnnotatedChange `json:"change"`
}

func (c ChangeAnnotated_v1) IsInternal() bool {
	return false
}
