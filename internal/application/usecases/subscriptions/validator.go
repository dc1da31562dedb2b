package subscriptions

import (
	"context"
	"fmt"

	"changegate/internal/entities"
	"changegate/internal/eval"
)

// validateFilters checks every filter against the viewer role's selectable
// columns and the evaluator's coercion rules, failing fast on the first bad
// one. A filter on a column the viewer cannot read is rejected with the same
// message as one on a column that does not exist, so the error reveals
// nothing about invisible columns.
func (u *Usecase) validateFilters(ctx context.Context, rel *entities.Relation, filters []entities.Filter) error {
	if len(filters) == 0 {
		return nil
	}

	columns, err := u.catalog.SelectableColumns(ctx, rel, u.viewerRole)
	if err != nil {
		return fmt.Errorf("failed to resolve selectable columns for %s: %w", rel.Entity(), err)
	}

	byName := make(map[string]entities.RelationColumn, len(columns))
	for _, col := range columns {
		byName[col.Name] = col
	}

	for _, filter := range filters {
		if _, err := eval.ParseOp(filter.Op); err != nil {
			return &entities.FilterValidationError{
				Column: filter.ColumnName,
				Reason: fmt.Sprintf("unknown operator %q", filter.Op),
			}
		}

		column, ok := byName[filter.ColumnName]
		if !ok {
			return &entities.FilterValidationError{
				Column: filter.ColumnName,
				Reason: "column is not selectable by the subscribing role",
			}
		}

		if err := eval.Coercible(column.Type, filter.Value); err != nil {
			return &entities.FilterValidationError{
				Column: filter.ColumnName,
				Reason: fmt.Sprintf("value %q cannot be coerced to type %s", filter.Value, column.Type),
			}
		}
	}

	return nil
}
