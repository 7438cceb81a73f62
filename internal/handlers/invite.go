package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/dto"
	"github.com/yukikurage/planner-api/internal/services"
)

type InviteHandler struct {
	invites *services.InviteService
}

func NewInviteHandler(invites *services.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// SendTeamInvite invites an e-mail address to the team in :id.
func (h *InviteHandler) SendTeamInvite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.TeamInviteRequest
	if !bindJSON(c, &req) {
		return
	}

	invite, err := h.invites.SendTeamInvite(c.Request.Context(), userID, teamID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteDTO(*invite))
}

func (h *InviteHandler) SendPartnerInvite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.PartnerInviteRequest
	if !bindJSON(c, &req) {
		return
	}

	invite, err := h.invites.SendPartnerInvite(c.Request.Context(), userID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteDTO(*invite))
}

// ListPending returns the invites waiting on the caller.
func (h *InviteHandler) ListPending(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	invites, err := h.invites.ListPending(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invites": dto.ToInviteDTOs(invites)})
}

// Accept resolves the invite and reports what was created: a team
// membership or an accepted partnership.
func (h *InviteHandler) Accept(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	inviteID, ok := paramID(c, "id")
	if !ok {
		return
	}

	outcome, err := h.invites.Accept(c.Request.Context(), userID, inviteID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"invite": dto.ToInviteDTO(*outcome.Invite)}
	if outcome.Member != nil {
		resp["member"] = dto.ToTeamMemberDTO(*outcome.Member)
	}
	if outcome.Partner != nil {
		resp["partner"] = outcome.Partner
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InviteHandler) Decline(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	inviteID, ok := paramID(c, "id")
	if !ok {
		return
	}

	invite, err := h.invites.Decline(c.Request.Context(), userID, inviteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invite": dto.ToInviteDTO(*invite)})
}
