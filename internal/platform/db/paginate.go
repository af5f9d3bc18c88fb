package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"account_backend/internal/shared/pagination"
)

// Paginate returns a scope applying the sort, offset and limit of p.
// Sort fields are resolved through columns; unknown fields fall back to fallback.
func Paginate(p pagination.Pageable, columns map[string]string, fallback pagination.Sort) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		sort := p.Sort
		col, ok := columns[sort.Field]
		if !ok {
			sort = fallback
			col = columns[fallback.Field]
		}
		order := clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: sort.Desc}
		// A stable tiebreaker keeps pages disjoint when the sort column has duplicates.
		if col != "id" {
			return tx.Order(order).Order("id").Offset(p.Offset()).Limit(p.Size)
		}
		return tx.Order(order).Offset(p.Offset()).Limit(p.Size)
	}
}
