// Package pagination defines page requests and page results shared by list endpoints.
package pagination

import (
	"math"
	"strings"
)

const (
	// DefaultSize is used when a request omits the page size.
	DefaultSize = 10
	// MaxSize caps the page size a client may request.
	MaxSize = 100
)

// Sort orders a listing by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// Pageable is a 0-indexed page request.
type Pageable struct {
	Page int
	Size int
	Sort Sort
}

// Of builds a Pageable, clamping out-of-range values. page is capped so that
// Offset never overflows.
func Of(page, size int, sort Sort) Pageable {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if page < 0 {
		page = 0
	}
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}
	return Pageable{Page: page, Size: size, Sort: sort}
}

// Offset returns the number of rows to skip.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// ParseSort parses "field,dir" (dir is asc or desc). Only "desc" yields
// descending order; a missing direction sorts ascending. An empty value returns def.
func ParseSort(raw string, def Sort) Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	parts := strings.SplitN(raw, ",", 2)
	s := Sort{Field: strings.TrimSpace(parts[0])}
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		s.Desc = true
	}
	if s.Field == "" {
		return def
	}
	return s
}

// Page is one page of results.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a page from its content and the total row count.
func NewPage[T any](content []T, p Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if p.Size > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
