package dto

import (
	"time"

	"github.com/yukikurage/planner-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uint64    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamWithRoleDTO represents a team with the user's role
type TeamWithRoleDTO struct {
	TeamDTO
	Role models.TeamRole `json:"role"`
}

// TeamMemberDTO represents a member in a team
type TeamMemberDTO struct {
	User     *UserDTO        `json:"user,omitempty"`
	UserID   uint64          `json:"user_id"`
	Role     models.TeamRole `json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
}

// TeamDetailDTO represents detailed team information
type TeamDetailDTO struct {
	TeamDTO
	Members  []TeamMemberDTO `json:"members"`
	YourRole models.TeamRole `json:"your_role"`
	IsOwner  bool            `json:"is_owner"`
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type ChangeRoleRequest struct {
	Role models.TeamRole `json:"role" binding:"required,oneof=admin editor viewer"`
}

type TeamInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:        team.ID,
		Name:      team.Name,
		OwnerID:   team.OwnerID,
		CreatedAt: team.CreatedAt,
	}
}

// ToTeamWithRoleDTO converts a membership with its preloaded team
func ToTeamWithRoleDTO(member models.TeamMember) TeamWithRoleDTO {
	dto := TeamWithRoleDTO{Role: member.Role}
	if member.Team != nil {
		dto.TeamDTO = ToTeamDTO(*member.Team)
	} else {
		dto.ID = member.TeamID
	}
	return dto
}

// ToTeamMemberDTO converts a member to DTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	dto := TeamMemberDTO{
		UserID:   member.UserID,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
	if member.User != nil {
		user := ToUserDTO(*member.User)
		dto.User = &user
	}
	return dto
}

// ToTeamDetailDTO converts a team with members to the detailed DTO seen by viewerID
func ToTeamDetailDTO(team models.Team, viewerID uint64) TeamDetailDTO {
	members := make([]TeamMemberDTO, len(team.Members))
	var role models.TeamRole
	for i, member := range team.Members {
		members[i] = ToTeamMemberDTO(member)
		if member.UserID == viewerID {
			role = member.Role
		}
	}

	return TeamDetailDTO{
		TeamDTO:  ToTeamDTO(team),
		Members:  members,
		YourRole: role,
		IsOwner:  team.OwnerID == viewerID,
	}
}
