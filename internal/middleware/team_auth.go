package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/constants"
	apierrors "github.com/yukikurage/planner-api/internal/errors"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/services"
)

// RequireTeamAccess checks if the user is a member of the team in :id
func RequireTeamAccess(teams *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid team ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		member, err := teams.GetMembership(c.Request.Context(), teamID, userID)
		if err != nil {
			// Return 404 instead of 403 to avoid leaking team existence
			if errors.Is(err, services.ErrNotTeamMember) {
				apierrors.NotFound(c, "Team not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTeamMember, *member)
		c.Next()
	}
}

// RequireTeamAdmin checks the membership loaded by RequireTeamAccess
func RequireTeamAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetTeamMember(c)
		if !ok {
			apierrors.Forbidden(c, "Team access required")
			c.Abort()
			return
		}

		if member.Role != models.TeamRoleAdmin {
			apierrors.Forbidden(c, "Only team admins can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetTeamMember(c *gin.Context) (models.TeamMember, bool) {
	v, exists := c.Get(constants.ContextKeyTeamMember)
	if !exists {
		return models.TeamMember{}, false
	}
	member, ok := v.(models.TeamMember)
	return member, ok
}
