package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseNativeID(t *testing.T) {
	id := uuid.New()

	parsed, ok := ParseNativeID(id.String())
	assert.True(t, ok)
	assert.Equal(t, id, parsed)

	// Surrounding whitespace is tolerated
	parsed, ok = ParseNativeID("  " + id.String() + " ")
	assert.True(t, ok)
	assert.Equal(t, id, parsed)
}

func TestParseNativeIDMalformed(t *testing.T) {
	for _, s := range []string{"", "not-an-id", "12345", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"} {
		_, ok := ParseNativeID(s)
		assert.False(t, ok, s)
	}
}

func TestNormalizeRef(t *testing.T) {
	id := uuid.New()

	// Native references collapse to canonical lowercase form
	assert.Equal(t, id.String(), NormalizeRef(id.String()))
	assert.Equal(t, id.String(), NormalizeRef(strings.ToUpper(id.String())))

	// Opaque legacy identifiers pass through untouched
	assert.Equal(t, "legacy-crm-4711", NormalizeRef("legacy-crm-4711"))
	assert.Equal(t, "", NormalizeRef(""))
}
