// Package identity provides scoped impersonation of a subscriber on a
// dedicated database connection. The ambient role and user claim are captured
// on entry, switched to the target subscriber, and restored unconditionally on
// exit, including on error and panic.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"changegate/internal/entities"
)

// UserClaimSetting is the session setting RLS policies read to identify the
// subscriber a check runs as, next to the impersonated role itself.
const UserClaimSetting = "changegate.user_id"

// Scope owns one pooled connection for the duration of one event's
// evaluation. It must not be shared across concurrent evaluations: the
// ambient identity is connection-local state.
type Scope struct {
	conn *sqlx.Conn
	role string
}

// NewScope wraps conn for impersonated execution. role is the database role
// subscribers are mapped onto (for example "authenticated").
func NewScope(conn *sqlx.Conn, role string) *Scope {
	return &Scope{conn: conn, role: role}
}

// ExecuteAsUser runs fn with the connection's ambient identity switched to
// userID. The previous identity is restored in every exit path; a failed
// restore is escalated as an IdentityRestorationError because continuing on a
// connection with an unknown identity is not safe.
func (s *Scope) ExecuteAsUser(ctx context.Context, userID string, fn func(ctx context.Context) error) (err error) {
	var prevRole, prevUser string
	row := s.conn.QueryRowxContext(ctx,
		`SELECT coalesce(current_setting('role', true), ''), coalesce(current_setting($1, true), '')`,
		UserClaimSetting,
	)
	if scanErr := row.Scan(&prevRole, &prevUser); scanErr != nil {
		return fmt.Errorf("capturing ambient identity: %w", scanErr)
	}

	if _, execErr := s.conn.ExecContext(ctx,
		`SELECT set_config('role', $1, false), set_config($2, $3, false)`,
		s.role, UserClaimSetting, userID,
	); execErr != nil {
		return fmt.Errorf("impersonating user %q: %w", userID, execErr)
	}

	defer func() {
		if restoreErr := s.restore(ctx, prevRole, prevUser); restoreErr != nil {
			err = errors.Join(err, &entities.IdentityRestorationError{Err: restoreErr})
		}
	}()

	return fn(ctx)
}

func (s *Scope) restore(ctx context.Context, prevRole, prevUser string) error {
	if prevRole == "" {
		// current_setting('role') reports "none" when no role is set, an
		// empty capture means the setting was absent entirely.
		prevRole = "none"
	}
	_, err := s.conn.ExecContext(ctx,
		`SELECT set_config('role', $1, false), set_config($2, $3, false)`,
		prevRole, UserClaimSetting, prevUser,
	)
	return err
}
