package entities

import (
	"fmt"
	"strconv"
)

type Action string

const (
	ActionInsert   Action = "I"
	ActionUpdate   Action = "U"
	ActionDelete   Action = "D"
	ActionTruncate Action = "T"
)

// Entity identifies one relation by schema and name.
type Entity struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`
}

func (e Entity) String() string {
	return e.Schema + "." + e.Name
}

// ColumnDescriptor is one column of a captured row change. Value is opaque
// to the engine, only the equality evaluator interprets it.
type ColumnDescriptor struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type PKColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ChangeEvent is one row-level mutation captured from the WAL feed.
type ChangeEvent struct {
	Schema          string             `json:"schema"`
	Table           string             `json:"table"`
	Action          Action             `json:"action"`
	PK              []PKColumn         `json:"pk"`
	Columns         []ColumnDescriptor `json:"columns"`
	OldRecord       map[string]any     `json:"old_record,omitempty"`
	CommitTimestamp string             `json:"commit_timestamp,omitempty"`
}

func (e *ChangeEvent) Entity() Entity {
	return Entity{Schema: e.Schema, Name: e.Table}
}

// Column returns the descriptor for the named column of the new record.
func (e *ChangeEvent) Column(name string) (ColumnDescriptor, bool) {
	for _, c := range e.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}

// PKValues resolves the primary key values of the affected row. For deletes
// the new record is gone, so values come from old_record.
func (e *ChangeEvent) PKValues() ([]string, []string, error) {
	names := make([]string, 0, len(e.PK))
	values := make([]string, 0, len(e.PK))

	for _, pk := range e.PK {
		names = append(names, pk.Name)

		if e.Action == ActionDelete {
			v, ok := e.OldRecord[pk.Name]
			if !ok {
				return nil, nil, fmt.Errorf("old_record is missing primary key column %q", pk.Name)
			}
			values = append(values, ValueText(v))
			continue
		}

		c, ok := e.Column(pk.Name)
		if !ok {
			return nil, nil, fmt.Errorf("event is missing primary key column %q", pk.Name)
		}
		values = append(values, ValueText(c.Value))
	}

	return names, values, nil
}

// ValueText renders a wire value as its canonical text form. JSON numbers
// arrive as float64, so integral values must not pick up an exponent or a
// trailing fraction.
func ValueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
