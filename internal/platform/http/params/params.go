// Package params parses common query and path parameters.
package params

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"account_backend/internal/shared/pagination"
)

// Pageable reads page, size and sort from the query string. Missing values
// take their defaults; malformed numbers are an error.
func Pageable(c *gin.Context, def pagination.Sort) (pagination.Pageable, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return pagination.Pageable{}, err
	}
	size, err := queryInt(c, "size", pagination.DefaultSize)
	if err != nil {
		return pagination.Pageable{}, err
	}
	return pagination.Of(page, size, pagination.ParseSort(c.Query("sort"), def)), nil
}

// PathUint parses a positive integer path parameter.
func PathUint(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(n), nil
}

// localDateTime is ISO 8601 without a zone offset. Such values are read as UTC.
const localDateTime = "2006-01-02T15:04:05"

// ParseTime parses an optional timestamp named name. It accepts RFC 3339 and
// falls back to a zone-less ISO local date-time. An empty value yields nil.
func ParseTime(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(localDateTime, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected RFC3339 or %s", name, raw, localDateTime)
	}
	return &t, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}
