// Package oracle answers "would a query issued as this user against this
// relation, restricted to this row, return at least one row". It delegates
// the decision to the database's own row-level-security enforcement instead
// of reimplementing policy logic.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"changegate/internal/entities"
)

// Oracle builds existence checks on the connection whose ambient identity the
// caller impersonates around each invocation.
type Oracle struct {
	conn *sqlx.Conn
}

func New(conn *sqlx.Conn) *Oracle {
	return &Oracle{conn: conn}
}

// ExistenceCheck is a prepared per-event query shape: fixed relation, fixed
// primary key columns. Only the key values (and the caller's impersonated
// identity) vary across invocations. Close must be called even when an
// invocation errored.
type ExistenceCheck interface {
	RowExists(ctx context.Context, pkValues []string) (bool, error)
	Close() error
}

type existenceCheck struct {
	stmt *sqlx.Stmt
	n    int
}

// PrepareExistenceCheck prepares the minimal existence query for one
// (relation, primary key columns) shape. Identifiers are quoted, key values
// are bound as parameters; nothing user-supplied is interpolated. Key columns
// are compared in their text form so the statement works for every key type
// the wire can carry.
func (o *Oracle) PrepareExistenceCheck(ctx context.Context, rel *entities.Relation, pkColumns []string) (ExistenceCheck, error) {
	if len(pkColumns) == 0 {
		return nil, fmt.Errorf("relation %s: no primary key columns in event", rel.Entity())
	}

	conditions := make([]string, 0, len(pkColumns))
	for i, col := range pkColumns {
		conditions = append(conditions, fmt.Sprintf("%s::text = $%d", pq.QuoteIdentifier(col), i+1))
	}

	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s.%s WHERE %s)",
		pq.QuoteIdentifier(rel.Schema),
		pq.QuoteIdentifier(rel.Name),
		strings.Join(conditions, " AND "),
	)

	stmt, err := o.conn.PreparexContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("preparing existence check for %s: %w", rel.Entity(), err)
	}

	return &existenceCheck{stmt: stmt, n: len(pkColumns)}, nil
}

func (c *existenceCheck) RowExists(ctx context.Context, pkValues []string) (bool, error) {
	if len(pkValues) != c.n {
		return false, fmt.Errorf("existence check wants %d key values, got %d", c.n, len(pkValues))
	}

	args := make([]any, len(pkValues))
	for i, v := range pkValues {
		args[i] = v
	}

	var exists bool
	if err := c.stmt.GetContext(ctx, &exists, args...); err != nil {
		return false, err
	}
	return exists, nil
}

func (c *existenceCheck) Close() error {
	return c.stmt.Close()
}
