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

// RequirePartnerAccess checks that the user is a party of the accepted
// partnership in :id
func RequirePartnerAccess(partners *services.PartnerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid partner ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		partner, err := partners.Room(c.Request.Context(), userID, partnerID)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrPartnerNotFound):
			// Return 404 instead of 403 to avoid leaking partnerships
			apierrors.NotFound(c, "Partner not found")
			c.Abort()
			return
		case errors.Is(err, services.ErrPartnershipNotAccepted):
			apierrors.Forbidden(c, err.Error())
			c.Abort()
			return
		default:
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPartner, partner)
		c.Next()
	}
}

// GetPartner returns the accepted partnership stored by RequirePartnerAccess.
func GetPartner(c *gin.Context) (*models.Partner, bool) {
	v, exists := c.Get(constants.ContextKeyPartner)
	if !exists {
		return nil, false
	}
	partner, ok := v.(*models.Partner)
	return partner, ok && partner != nil
}
