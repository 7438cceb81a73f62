package models

import "time"

const DefaultTheme = "light"

type Profile struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	UserID      uint64 `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string `gorm:"type:varchar(100);not null" json:"display_name"`
	StreakCount int    `gorm:"not null;default:0" json:"streak_count"`
	// LastCompletedDate is a civil date (YYYY-MM-DD) in the profile's timezone.
	LastCompletedDate    *string   `gorm:"type:varchar(10)" json:"last_completed_date"`
	Plan                 string    `gorm:"type:varchar(20);not null;default:''" json:"plan"`
	Theme                string    `gorm:"type:varchar(30);not null;default:'light'" json:"theme"`
	NotificationsEnabled bool      `gorm:"not null;default:true" json:"notifications_enabled"`
	Timezone             string    `gorm:"type:varchar(64)" json:"timezone"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
