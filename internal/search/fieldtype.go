package search

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type FieldType int

const (
	Boolean FieldType = iota
	Char
	Date
	Double
	Integer
	Long
	UUID
	String
)

// DateLayout is the non ISO-8601 form accepted for Date values, read in the
// server's local zone.
const DateLayout = "02/01/2006 15:04:05"

var fieldTypeNames = map[FieldType]string{
	Boolean: "BOOLEAN",
	Char:    "CHAR",
	Date:    "DATE",
	Double:  "DOUBLE",
	Integer: "INTEGER",
	Long:    "LONG",
	UUID:    "UUID",
	String:  "STRING",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// Value is a decoded filter value. Valid is false when a relaxed type (UUID,
// Date) could not decode its input; V is nil in that case.
type Value struct {
	V     any
	Valid bool
}

func valid(v any) (Value, error) { return Value{V: v, Valid: true}, nil }

// Parse decodes raw according to t. Boolean, Char, Double, Integer, Long and
// String are strict and return an error on malformed input. UUID and Date are
// relaxed: a malformed value is logged and comes back as an invalid Value with
// a nil error, so callers can drop it instead of failing the request.
func (t FieldType) Parse(raw string) (Value, error) {
	switch t {
	case Boolean:
		return valid(strings.EqualFold(raw, "true"))
	case Char:
		r, size := utf8.DecodeRuneInString(raw)
		if size == 0 {
			return Value{}, errors.New("empty value for CHAR field")
		}
		return valid(r)
	case Date:
		d, err := parseDate(raw)
		if err != nil {
			slog.Error("failed to parse field type DATE", "value", raw, "error", err)
			return Value{}, nil
		}
		return valid(d)
	case Double:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid DOUBLE %q: %w", raw, err)
		}
		return valid(f)
	case Integer:
		i, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("invalid INTEGER %q: %w", raw, err)
		}
		return valid(int32(i))
	case Long:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid LONG %q: %w", raw, err)
		}
		return valid(i)
	case UUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			slog.Error("failed to parse field type UUID", "value", raw, "error", err)
			return Value{}, nil
		}
		return valid(id)
	case String:
		return valid(raw)
	}
	return Value{}, fmt.Errorf("unsupported field type %s", t)
}

func parseDate(raw string) (time.Time, error) {
	if strings.Contains(raw, "T") {
		return time.Parse(time.RFC3339, raw)
	}
	return time.ParseInLocation(DateLayout, raw, time.Local)
}
