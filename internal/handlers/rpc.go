package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/dto"
	"github.com/yukikurage/planner-api/internal/services"
)

// RPCHandler exposes the server functions clients call by name.
type RPCHandler struct {
	profiles *services.ProfileService
	teams    *services.TeamService
}

func NewRPCHandler(profiles *services.ProfileService, teams *services.TeamService) *RPCHandler {
	return &RPCHandler{profiles: profiles, teams: teams}
}

// UpdateUserStreak records a completion made today and returns the streak.
func (h *RPCHandler) UpdateUserStreak(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profiles.UpdateStreak(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"streak_count":        profile.StreakCount,
		"last_completed_date": profile.LastCompletedDate,
	})
}

func (h *RPCHandler) IsTeamOwner(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.TeamIDRequest
	if !bindJSON(c, &req) {
		return
	}

	owner, err := h.teams.IsOwner(c.Request.Context(), req.TeamID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_owner": owner})
}
