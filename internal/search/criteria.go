package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Operation string

const (
	Equal    Operation = ":"
	NotEqual Operation = "!"
	Greater  Operation = ">"
	Less     Operation = "<"
	Like     Operation = "~"
)

// operations in the order they are looked for inside an expression.
var operations = []Operation{Equal, NotEqual, Greater, Less, Like}

// Field maps a public filter key to its column and type.
type Field struct {
	Column string
	Type   FieldType
}

type Fields map[string]Field

type Criterion struct {
	Key   string
	Op    Operation
	Value Value
}

// ParseFilters parses expressions of the form key<op>value. Expressions with
// an unknown key or no operator, and relaxed values that failed to decode,
// are dropped. A strict type that fails to decode is returned as an error.
func ParseFilters(raw []string, fields Fields) ([]Criterion, error) {
	var out []Criterion
	for _, expr := range raw {
		key, op, value, ok := split(expr)
		if !ok {
			continue
		}
		field, known := fields[key]
		if !known {
			continue
		}
		v, err := field.Type.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", key, err)
		}
		if !v.Valid {
			continue
		}
		out = append(out, Criterion{Key: key, Op: op, Value: v})
	}
	return out, nil
}

func split(expr string) (key string, op Operation, value string, ok bool) {
	best := -1
	for _, candidate := range operations {
		if i := strings.Index(expr, string(candidate)); i > 0 && (best == -1 || i < best) {
			best = i
			op = candidate
		}
	}
	if best == -1 {
		return "", "", "", false
	}
	return strings.TrimSpace(expr[:best]), op, strings.TrimSpace(expr[best+len(op):]), true
}

// Where renders criteria as a SQL boolean expression joined with AND, using
// positional parameters starting at $argStart. It returns "" when criteria
// is empty.
func Where(criteria []Criterion, fields Fields, argStart int) (string, []any) {
	var (
		parts []string
		args  []any
	)
	for _, c := range criteria {
		field, ok := fields[c.Key]
		if !ok {
			continue
		}
		n := argStart + len(args)
		arg := sqlArg(c.Value.V)
		switch c.Op {
		case Equal:
			parts = append(parts, fmt.Sprintf("%s = $%d", field.Column, n))
		case NotEqual:
			parts = append(parts, fmt.Sprintf("%s <> $%d", field.Column, n))
		case Greater:
			parts = append(parts, fmt.Sprintf("%s > $%d", field.Column, n))
		case Less:
			parts = append(parts, fmt.Sprintf("%s < $%d", field.Column, n))
		case Like:
			parts = append(parts, fmt.Sprintf("%s::text ILIKE $%d", field.Column, n))
			arg = "%" + fmt.Sprint(arg) + "%"
		default:
			continue
		}
		args = append(args, arg)
	}
	return strings.Join(parts, " AND "), args
}

func sqlArg(v any) any {
	if r, ok := v.(rune); ok {
		return string(r)
	}
	return v
}

// Match evaluates criteria in memory. get returns the current value of a
// filter key; nil values never match.
func Match(criteria []Criterion, get func(key string) any) bool {
	for _, c := range criteria {
		actual := deref(get(c.Key))
		if actual == nil {
			return false
		}
		if !matches(c.Op, actual, c.Value.V) {
			return false
		}
	}
	return true
}

func matches(op Operation, actual, expected any) bool {
	if op == Like {
		return strings.Contains(strings.ToLower(fmt.Sprint(actual)), strings.ToLower(fmt.Sprint(sqlArg(expected))))
	}
	cmp, ok := compare(actual, expected)
	if !ok {
		return false
	}
	switch op {
	case Equal:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case Greater:
		return cmp > 0
	case Less:
		return cmp < 0
	}
	return false
}

func compare(a, b any) (int, bool) {
	switch av := a.(type) {
	case string:
		return strings.Compare(av, fmt.Sprint(sqlArg(b))), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		return 1, true
	case uuid.UUID:
		bv, ok := b.(uuid.UUID)
		if !ok {
			return 0, false
		}
		return strings.Compare(av.String(), bv.String()), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func deref(v any) any {
	switch p := v.(type) {
	case *uuid.UUID:
		if p == nil {
			return nil
		}
		return *p
	case *time.Time:
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}
