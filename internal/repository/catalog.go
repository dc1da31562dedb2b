package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"changegate/internal/entities"
)

// CatalogRepo reads authorization metadata straight from the database
// catalogs: relation existence, whether row-level security is enabled, and
// which columns a role may read. Nothing is cached across events; grants may
// change between any two events.
type CatalogRepo struct {
	db *sqlx.DB
}

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// ResolveRelation maps an entity to an existing ordinary table. A miss is an
// entities.EntityResolutionError, which is fatal for the event being
// evaluated.
func (r *CatalogRepo) ResolveRelation(ctx context.Context, entity entities.Entity) (*entities.Relation, error) {
	query := `
		SELECT c.oid, n.nspname, c.relname, c.relrowsecurity
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2 AND c.relkind = 'r'`

	var rel entities.Relation
	err := r.db.QueryRowxContext(ctx, query, entity.Schema, entity.Name).
		Scan(&rel.OID, &rel.Schema, &rel.Name, &rel.RLSEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &entities.EntityResolutionError{Entity: entity, Err: entities.ErrEntityNotFound}
	}
	if err != nil {
		return nil, &entities.EntityResolutionError{Entity: entity, Err: err}
	}

	return &rel, nil
}

// SelectableColumns returns the columns role may read on the relation, with
// their resolved types. No grants is a valid state and yields an empty slice,
// not an error.
func (r *CatalogRepo) SelectableColumns(ctx context.Context, rel *entities.Relation, role string) ([]entities.RelationColumn, error) {
	regclass := fmt.Sprintf("%s.%s", pq.QuoteIdentifier(rel.Schema), pq.QuoteIdentifier(rel.Name))

	query := `
		SELECT c.column_name, c.udt_name
		FROM information_schema.columns c
		WHERE c.table_schema = $1
		  AND c.table_name = $2
		  AND has_column_privilege($3, $4::regclass, c.column_name, 'SELECT')
		ORDER BY c.ordinal_position`

	rows, err := r.db.QueryxContext(ctx, query, rel.Schema, rel.Name, role, regclass)
	if err != nil {
		return nil, fmt.Errorf("failed to read column grants for %s: %w", rel.Entity(), err)
	}
	defer rows.Close()

	columns := make([]entities.RelationColumn, 0)
	for rows.Next() {
		var col entities.RelationColumn
		if err := rows.Scan(&col.Name, &col.Type); err != nil {
			return nil, fmt.Errorf("failed to scan column grant row: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read column grants for %s: %w", rel.Entity(), err)
	}

	return columns, nil
}
