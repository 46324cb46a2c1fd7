package models

import (
	"fmt"
	"strings"
)

// EnumEntry is the public shape of an enum constant: its stored value, a
// machine name and a display name.
type EnumEntry struct {
	Value       any    `json:"value"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type enumMeta[T comparable] struct {
	value       T
	name        string
	displayName string
}

func entries[T comparable](metas []enumMeta[T]) []EnumEntry {
	out := make([]EnumEntry, len(metas))
	for i, m := range metas {
		out[i] = EnumEntry{Value: m.value, Name: m.name, DisplayName: m.displayName}
	}
	return out
}

// lookup matches string-valued enums case-insensitively.
func lookup[T ~string](metas []enumMeta[T], v string) (T, bool) {
	for _, m := range metas {
		if strings.EqualFold(string(m.value), v) {
			return m.value, true
		}
	}
	var zero T
	return zero, false
}

func displayName[T comparable](metas []enumMeta[T], v T) string {
	for _, m := range metas {
		if m.value == v {
			return m.displayName
		}
	}
	return fmt.Sprint(v)
}
