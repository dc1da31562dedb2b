package engine

import "changegate/internal/entities"

// redactColumns removes every column descriptor the viewer role may not
// read. When the grant set covers all event columns the original slice is
// returned untouched, so redacting an already-redacted event is a no-op.
func redactColumns(columns []entities.ColumnDescriptor, granted []entities.RelationColumn) []entities.ColumnDescriptor {
	grantedNames := make(map[string]struct{}, len(granted))
	for _, col := range granted {
		grantedNames[col.Name] = struct{}{}
	}

	strictSubset := false
	for _, col := range columns {
		if _, ok := grantedNames[col.Name]; !ok {
			strictSubset = true
			break
		}
	}
	if !strictSubset {
		return columns
	}

	redacted := make([]entities.ColumnDescriptor, 0, len(columns))
	for _, col := range columns {
		if _, ok := grantedNames[col.Name]; ok {
			redacted = append(redacted, col)
		}
	}
	return redacted
}

// annotate builds the outward-facing copy: redacted columns, the security
// block attached, and the raw pk descriptor list dropped. The pk list was
// only needed internally for the authorization checks.
func annotate(event *entities.ChangeEvent, columns []entities.ColumnDescriptor, rlsEnabled bool, visibleTo []string) entities.AnnotatedChange {
	return entities.AnnotatedChange{
		Schema:          event.Schema,
		Table:           event.Table,
		Action:          event.Action,
		Columns:         columns,
		OldRecord:       event.OldRecord,
		CommitTimestamp: event.CommitTimestamp,
		Security: entities.SecurityAnnotation{
			IsRLSEnabled: rlsEnabled,
			VisibleTo:    visibleTo,
		},
	}
}
