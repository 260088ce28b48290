// utils/identifiers.go
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseNativeID reports whether s is a valid native document reference and
// returns it parsed. Malformed input is signalled, never an error or panic.
func ParseNativeID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// NormalizeRef canonicalizes a reference value for filtering. Valid native
// ids collapse to their canonical string form; anything else passes through
// unchanged as an opaque foreign key, so legacy identifiers keep working.
func NormalizeRef(s string) string {
	if id, ok := ParseNativeID(s); ok {
		return id.String()
	}
	return s
}
