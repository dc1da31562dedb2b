package entities

// SecurityAnnotation is attached to the outward-facing copy of a change
// event. VisibleTo lists the deduplicated user ids authorized to see the row.
type SecurityAnnotation struct {
	IsRLSEnabled bool     `json:"is_rls_enabled"`
	VisibleTo    []string `json:"visible_to"`
}

// AnnotatedChange is the outward-facing copy of a change event: columns
// possibly reduced to the grantable subset, the raw pk descriptor list
// stripped, and the security block attached.
type AnnotatedChange struct {
	Schema          string             `json:"schema"`
	Table           string             `json:"table"`
	Action          Action             `json:"action"`
	Columns         []ColumnDescriptor `json:"columns"`
	OldRecord       map[string]any     `json:"old_record,omitempty"`
	CommitTimestamp string             `json:"commit_timestamp,omitempty"`
	Security        SecurityAnnotation `json:"security"`
}

// EvaluationResult is the reporting view of one evaluated event. Errors holds
// the per-subscriber failures that were treated as "does not see this change";
// they never appear on the wire payload.
type EvaluationResult struct {
	Annotated       AnnotatedChange
	IsRLSEnabled    bool
	SubscriptionIDs []string
	Errors          []error
}
