package models

import "time"

type PartnerStatus string

const (
	PartnerStatusPending  PartnerStatus = "pending"
	PartnerStatusAccepted PartnerStatus = "accepted"
	PartnerStatusDeclined PartnerStatus = "declined"
)

// Partner links the inviting user (UserID) to the invited party. PartnerID is
// filled in once the invited party accepts.
type Partner struct {
	ID           uint64        `gorm:"primarykey" json:"id"`
	UserID       uint64        `gorm:"not null;index" json:"user_id"`
	PartnerEmail string        `gorm:"type:varchar(255);not null" json:"partner_email"`
	Status       PartnerStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PartnerID    *uint64       `gorm:"index" json:"partner_id,omitempty"`
	ChatRoomID   *string       `gorm:"type:varchar(36)" json:"chat_room_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Involves reports whether userID is one of the two parties.
func (p Partner) Involves(userID uint64) bool {
	return p.UserID == userID || (p.PartnerID != nil && *p.PartnerID == userID)
}

// Counterpart returns the other party's user ID, if known.
func (p Partner) Counterpart(userID uint64) (uint64, bool) {
	if p.UserID == userID {
		if p.PartnerID == nil {
			return 0, false
		}
		return *p.PartnerID, true
	}
	return p.UserID, true
}
