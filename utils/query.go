// utils/query.go
package utils

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Filter helpers translate optional request parameters into store
// conditions. An absent or unusable value leaves the query untouched, it
// never narrows to "match nothing".

// ApplyExact adds an equality condition when value is present.
func ApplyExact(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", value)
}

// ApplySubstring adds a case-insensitive partial match when value is
// present. LOWER/LIKE instead of ILIKE so the condition runs on every
// dialect the tests use.
func ApplySubstring(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	pattern := "%" + strings.ToLower(value) + "%"
	return q.Where("LOWER("+column+") LIKE ?", pattern)
}

// ApplyIntRange adds inclusive lower/upper bounds. Unparseable bounds are
// dropped rather than erroring.
func ApplyIntRange(q *gorm.DB, column, minRaw, maxRaw string) *gorm.DB {
	if v, err := strconv.Atoi(minRaw); minRaw != "" && err == nil {
		q = q.Where(column+" >= ?", v)
	}
	if v, err := strconv.Atoi(maxRaw); maxRaw != "" && err == nil {
		q = q.Where(column+" <= ?", v)
	}
	return q
}

// ApplyRef adds a reference-equality condition. The value is resolved to
// its canonical native form when possible, opaque ids match verbatim.
func ApplyRef(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", NormalizeRef(value))
}

// ApplyBool adds a boolean condition when value parses as one.
func ApplyBool(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return q
	}
	return q.Where(column+" = ?", b)
}
