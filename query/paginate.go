package query

import "gorm.io/gorm"

const (
	DefaultOffset = 0
	DefaultLimit  = 10
)

// Paginate applies offset/limit, normalizing negatives back to the defaults.
// It must be the last step after filtering and sorting.
func Paginate(q *gorm.DB, offset, limit int) *gorm.DB {
	if offset < 0 {
		offset = DefaultOffset
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return q.Offset(offset).Limit(limit)
}
