package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/dto"
	"github.com/yukikurage/planner-api/internal/services"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// CreateTeam creates a team with the caller as owner and first admin
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teams.CreateTeam(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDetailDTO(*team, userID))
}

// ListTeams lists the teams the caller belongs to, with their role in each
func (h *TeamHandler) ListTeams(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	memberships, err := h.teams.ListTeams(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	teams := make([]dto.TeamWithRoleDTO, len(memberships))
	for i, m := range memberships {
		teams[i] = dto.ToTeamWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// GetTeam returns the team with its members
func (h *TeamHandler) GetTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	team, err := h.teams.GetTeam(c.Request.Context(), userID, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDetailDTO(*team, userID))
}

// DeleteTeam is restricted to the owner
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.teams.DeleteTeam(c.Request.Context(), userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// RemoveMember removes a member from the team (owner only)
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	if err := h.teams.RemoveMember(c.Request.Context(), userID, teamID, memberID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// ChangeRole updates a member's role (owner only)
func (h *TeamHandler) ChangeRole(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.teams.ChangeRole(c.Request.Context(), userID, teamID, memberID, req.Role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}
