package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a query to rows whose user_id matches.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Chronological orders rows oldest first with id as the tiebreaker.
func Chronological(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
