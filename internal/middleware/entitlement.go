package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/constants"
	"github.com/yukikurage/planner-api/internal/entitlement"
	apierrors "github.com/yukikurage/planner-api/internal/errors"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/services"
)

// RequireFeature rejects the request with 403 FEATURE_LOCKED unless the
// user's plan includes f. The resolved entitlements are stored in the context.
// Must run after RequireAuth.
func RequireFeature(profiles *services.ProfileService, m *metrics.Metrics, f entitlement.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		ent, err := profiles.Entitlements(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrProfileNotFound) {
				apierrors.ProfileMissing(c)
			} else {
				apierrors.InternalError(c, "Failed to resolve plan")
			}
			c.Abort()
			return
		}

		if !ent.Allows(f) {
			m.IncFeatureDenied(string(f))
			apierrors.FeatureLocked(c, string(f), string(entitlement.RequiredPlan(f)))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEntitlements, ent)
		c.Next()
	}
}

// GetEntitlements returns what RequireFeature stored.
func GetEntitlements(c *gin.Context) (entitlement.Entitlements, bool) {
	v, exists := c.Get(constants.ContextKeyEntitlements)
	if !exists {
		return entitlement.Entitlements{}, false
	}
	ent, ok := v.(entitlement.Entitlements)
	return ent, ok
}
