// Package eval compares a column value against a filter value under a
// comparison operator, with both operands coerced to the column's resolved
// type before comparing. '10' > '9' must hold for integer columns.
package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpGt  Op = "gt"
	OpGte Op = "gte"
)

var ErrUnknownOp = errors.New("unknown comparison operator")

func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
	}
}

// opSatisfied maps an operator to its verdict on a three-way comparison
// result (-1, 0, 1).
var opSatisfied = map[Op]func(cmp int) bool{
	OpEq:  func(cmp int) bool { return cmp == 0 },
	OpNeq: func(cmp int) bool { return cmp != 0 },
	OpLt:  func(cmp int) bool { return cmp < 0 },
	OpLte: func(cmp int) bool { return cmp <= 0 },
	OpGt:  func(cmp int) bool { return cmp > 0 },
	OpGte: func(cmp int) bool { return cmp >= 0 },
}

type CoercionError struct {
	Type  string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %q to type %s: %v", e.Value, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

type typeKind int

const (
	kindText typeKind = iota
	kindInt
	kindFloat
	kindBool
	kindTime
	kindDate
	kindUUID
)

// kindOf buckets a Postgres type name into a comparison kind. Unknown types
// fall back to lexical text comparison.
func kindOf(pgType string) typeKind {
	t := strings.ToLower(pgType)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimSpace(t)

	switch t {
	case "int2", "int4", "int8", "smallint", "integer", "int", "bigint",
		"smallserial", "serial", "bigserial", "oid":
		return kindInt
	case "numeric", "decimal", "float4", "float8", "real", "double precision", "money":
		return kindFloat
	case "bool", "boolean":
		return kindBool
	case "timestamp", "timestamptz", "timestamp without time zone", "timestamp with time zone":
		return kindTime
	case "date":
		return kindDate
	case "uuid":
		return kindUUID
	default:
		return kindText
	}
}

// Evaluate coerces both operands to pgType and applies op's native comparison
// semantics for that type. A coercion failure is always surfaced as an error,
// never as a silent verdict.
func Evaluate(op Op, pgType, a, b string) (bool, error) {
	satisfied, ok := opSatisfied[op]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}

	switch kindOf(pgType) {
	case kindInt:
		av, err := coerceInt(pgType, a)
		if err != nil {
			return false, err
		}
		bv, err := coerceInt(pgType, b)
		if err != nil {
			return false, err
		}
		return satisfied(compareInt(av, bv)), nil

	case kindFloat:
		av, err := coerceFloat(pgType, a)
		if err != nil {
			return false, err
		}
		bv, err := coerceFloat(pgType, b)
		if err != nil {
			return false, err
		}
		return satisfied(compareFloat(av, bv)), nil

	case kindBool:
		av, err := coerceBool(pgType, a)
		if err != nil {
			return false, err
		}
		bv, err := coerceBool(pgType, b)
		if err != nil {
			return false, err
		}
		return evaluateIdentity(op, av == bv)

	case kindTime, kindDate:
		av, err := coerceTime(pgType, a)
		if err != nil {
			return false, err
		}
		bv, err := coerceTime(pgType, b)
		if err != nil {
			return false, err
		}
		return satisfied(compareTime(av, bv)), nil

	case kindUUID:
		av, err := coerceUUID(pgType, a)
		if err != nil {
			return false, err
		}
		bv, err := coerceUUID(pgType, b)
		if err != nil {
			return false, err
		}
		return evaluateIdentity(op, av == bv)

	default:
		return satisfied(strings.Compare(a, b)), nil
	}
}

// Coercible reports whether v can be coerced to pgType, using the same rules
// Evaluate applies. The filter validator probes with it at write time.
func Coercible(pgType, v string) error {
	var err error
	switch kindOf(pgType) {
	case kindInt:
		_, err = coerceInt(pgType, v)
	case kindFloat:
		_, err = coerceFloat(pgType, v)
	case kindBool:
		_, err = coerceBool(pgType, v)
	case kindTime, kindDate:
		_, err = coerceTime(pgType, v)
	case kindUUID:
		_, err = coerceUUID(pgType, v)
	}
	return err
}

// evaluateIdentity handles types that only support identity comparison.
// Ordering operators on such a type are an evaluation error, not false.
func evaluateIdentity(op Op, equal bool) (bool, error) {
	switch op {
	case OpEq:
		return equal, nil
	case OpNeq:
		return !equal, nil
	default:
		return false, fmt.Errorf("operator %q is not supported for identity-only types", op)
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func coerceInt(pgType, v string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, &CoercionError{Type: pgType, Value: v, Err: err}
	}
	return n, nil
}

func coerceFloat(pgType, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &CoercionError{Type: pgType, Value: v, Err: err}
	}
	return f, nil
}

func coerceBool(pgType, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "t", "true", "1", "on", "yes":
		return true, nil
	case "f", "false", "0", "off", "no":
		return false, nil
	default:
		return false, &CoercionError{Type: pgType, Value: v, Err: errors.New("not a boolean literal")}
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func coerceTime(pgType, v string) (time.Time, error) {
	s := strings.TrimSpace(v)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &CoercionError{Type: pgType, Value: v, Err: errors.New("not a recognized timestamp literal")}
}

func coerceUUID(pgType, v string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return uuid.Nil, &CoercionError{Type: pgType, Value: v, Err: err}
	}
	return id, nil
}
