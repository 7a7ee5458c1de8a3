package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID returns a time-ordered key so inserts stay append-friendly on the primary key index.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

// paginate applies limit and offset when they are positive.
func paginate(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
