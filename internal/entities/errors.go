package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrEntityNotFound marks a change event that cannot be attributed to any
	// existing relation. Fatal for the whole event.
	ErrEntityNotFound = errors.New("entity does not resolve to an existing relation")

	// ErrIdentityNotRestored marks a failed restore of the ambient identity
	// after impersonation. The worker must stop instead of continuing in an
	// unknown identity.
	ErrIdentityNotRestored = errors.New("ambient identity was not restored after impersonation")
)

// EntityResolutionError carries the entity a catalog lookup failed for. It
// matches ErrEntityNotFound only when the wrapped cause is the sentinel; a
// transient catalog failure must stay retryable and never classify as "the
// relation does not exist".
type EntityResolutionError struct {
	Entity Entity
	Err    error
}

func (e *EntityResolutionError) Error() string {
	return fmt.Sprintf("resolving entity %s: %v", e.Entity, e.Err)
}

func (e *EntityResolutionError) Unwrap() error { return e.Err }

type GrantLookupError struct {
	Entity Entity
	Role   string
	Err    error
}

func (e *GrantLookupError) Error() string {
	return fmt.Sprintf("looking up column grants for role %q on %s: %v", e.Role, e.Entity, e.Err)
}

func (e *GrantLookupError) Unwrap() error { return e.Err }

// FilterCoercionError excludes one subscription from one event. Fail-closed:
// a filter that cannot be evaluated never grants visibility.
type FilterCoercionError struct {
	SubscriptionID string
	Column         string
	Err            error
}

func (e *FilterCoercionError) Error() string {
	return fmt.Sprintf("subscription %s: evaluating filter on column %q: %v", e.SubscriptionID, e.Column, e.Err)
}

func (e *FilterCoercionError) Unwrap() error { return e.Err }

// OracleExecutionError excludes one subscription from one event, same
// fail-closed treatment as a filter coercion failure.
type OracleExecutionError struct {
	SubscriptionID string
	UserID         string
	Err            error
}

func (e *OracleExecutionError) Error() string {
	return fmt.Sprintf("subscription %s: visibility check for user %q: %v", e.SubscriptionID, e.UserID, e.Err)
}

func (e *OracleExecutionError) Unwrap() error { return e.Err }

type IdentityRestorationError struct {
	Err error
}

func (e *IdentityRestorationError) Error() string {
	return fmt.Sprintf("restoring ambient identity: %v", e.Err)
}

func (e *IdentityRestorationError) Unwrap() error { return e.Err }

func (e *IdentityRestorationError) Is(target error) bool { return target == ErrIdentityNotRestored }

// FilterValidationError rejects a subscription write on its first invalid
// filter.
type FilterValidationError struct {
	Column string
	Reason string
}

func (e *FilterValidationError) Error() string {
	return fmt.Sprintf("invalid filter on column %q: %s", e.Column, e.Reason)
}
