package models

import "time"

type InviteType string

const (
	InviteTypeTeam    InviteType = "team"
	InviteTypePartner InviteType = "partner"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

type Invite struct {
	ID            uint64       `gorm:"primarykey" json:"id"`
	Type          InviteType   `gorm:"type:varchar(20);not null" json:"type"`
	SenderID      uint64       `gorm:"not null;index" json:"sender_id"`
	ReceiverEmail string       `gorm:"type:varchar(255);not null" json:"receiver_email"`
	Status        InviteStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TeamID        *uint64      `gorm:"index" json:"team_id,omitempty"`
	PartnerID     *uint64      `json:"partner_id,omitempty"`
	Token         string       `gorm:"type:varchar(32);uniqueIndex;not null" json:"-"`
	RespondedAt   *time.Time   `json:"responded_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`

	// Relations
	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Team   *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}
