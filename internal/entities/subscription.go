package entities

import (
	"time"

	"github.com/google/uuid"
)

// Filter is a user-defined, single-column condition on a subscription.
// Value is kept as uninterpreted text and coerced against the column type
// carried by the change event being evaluated, not the type at creation time.
type Filter struct {
	ColumnName string `json:"column_name"`
	Op         string `json:"op"`
	Value      string `json:"value"`
}

// Subscription is a standing registration of interest, by a user, in one
// entity's changes. Filters have passed validation when the subscription was
// last written; the engine does not re-validate them.
type Subscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Entity    Entity    `json:"entity"`
	Filters   []Filter  `json:"filters"`
	CreatedAt time.Time `json:"created_at"`
}
