package dto

import (
	"time"

	"github.com/yukikurage/planner-api/internal/models"
)

// InviteDTO represents an invite in API responses. The token is never exposed.
type InviteDTO struct {
	ID            uint64              `json:"id"`
	Type          models.InviteType   `json:"type"`
	Status        models.InviteStatus `json:"status"`
	ReceiverEmail string              `json:"receiver_email"`
	Sender        *UserDTO            `json:"sender,omitempty"`
	Team          *TeamDTO            `json:"team,omitempty"`
	PartnerID     *uint64             `json:"partner_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	RespondedAt   *time.Time          `json:"responded_at,omitempty"`
}

type PartnerInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

type CreatePartnerTaskRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// TeamIDRequest is the body of the is_team_owner server function.
type TeamIDRequest struct {
	TeamID uint64 `json:"team_id" binding:"required"`
}

func ToInviteDTO(invite models.Invite) InviteDTO {
	dto := InviteDTO{
		ID:            invite.ID,
		Type:          invite.Type,
		Status:        invite.Status,
		ReceiverEmail: invite.ReceiverEmail,
		PartnerID:     invite.PartnerID,
		CreatedAt:     invite.CreatedAt,
		RespondedAt:   invite.RespondedAt,
	}
	if invite.Sender != nil {
		sender := ToUserDTO(*invite.Sender)
		dto.Sender = &sender
	}
	if invite.Team != nil {
		team := ToTeamDTO(*invite.Team)
		dto.Team = &team
	}
	return dto
}

func ToInviteDTOs(invites []models.Invite) []InviteDTO {
	out := make([]InviteDTO, len(invites))
	for i, inv := range invites {
		out[i] = ToInviteDTO(inv)
	}
	return out
}
