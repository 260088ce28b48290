// utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit/offset query params. Absent, non-numeric or
// negative values fall back to the defaults.
func ParsePage(c *gin.Context) Page {
	return Page{
		Limit:  parseNonNegative(c.Query("limit"), DefaultLimit),
		Offset: parseNonNegative(c.Query("offset"), DefaultOffset),
	}
}

func parseNonNegative(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// FetchPage counts the filtered set, then loads one page sorted newest
// first. Equal timestamps tie-break on id so pagination stays deterministic
// across pages.
func FetchPage(query *gorm.DB, dest interface{}, p Page) (int64, error) {
	var filtered int64
	if err := query.Session(&gorm.Session{}).Count(&filtered).Error; err != nil {
		return 0, err
	}
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(dest).Error
	return filtered, err
}

// HasMore reports whether another page exists beyond this one.
func HasMore(p Page, filtered int64) bool {
	return int64(p.Offset+p.Limit) < filtered
}
