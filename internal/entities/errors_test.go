package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityResolutionErrorClassification(t *testing.T) {
	missing := &EntityResolutionError{
		Entity: Entity{Schema: "public", Name: "notes"},
		Err:    ErrEntityNotFound,
	}
	assert.ErrorIs(t, missing, ErrEntityNotFound)

	// a transient catalog failure is retryable and must never classify as
	// "the relation does not exist"
	transient := &EntityResolutionError{
		Entity: Entity{Schema: "public", Name: "notes"},
		Err:    errors.New("connection reset by peer"),
	}
	assert.NotErrorIs(t, transient, ErrEntityNotFound)
}

func TestIdentityRestorationErrorClassification(t *testing.T) {
	err := &IdentityRestorationError{Err: errors.New("connection lost")}
	assert.ErrorIs(t, err, ErrIdentityNotRestored)
}
