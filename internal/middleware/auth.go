package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/constants"
	apierrors "github.com/yukikurage/planner-api/internal/errors"
)

// RequireAuth admits requests whose session carries a user id and exposes
// that id to later handlers. A session holding anything else is cleared.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := SessionUserID(c)
		if !ok {
			session := sessions.Default(c)
			if session.Get(constants.ContextKeyUserID) != nil {
				session.Clear()
				_ = session.Save()
			}
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the user id stored by RequireAuth.
func GetUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(v)
}

// SessionUserID reads the user id straight from the session. Used by routes
// that answer anonymous callers too, such as the session probe.
func SessionUserID(c *gin.Context) (uint64, bool) {
	return toUserID(sessions.Default(c).Get(constants.ContextKeyUserID))
}

// toUserID normalises the integer kinds a session codec may hand back.
func toUserID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, id > 0
	case uint:
		return uint64(id), id > 0
	case int64:
		return uint64(id), id > 0
	case int:
		return uint64(id), id > 0
	default:
		return 0, false
	}
}
