package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/constants"
	apierrors "github.com/yukikurage/planner-api/internal/errors"
	"github.com/yukikurage/planner-api/internal/middleware"
	"github.com/yukikurage/planner-api/internal/services"
)

// respondError maps service errors onto API error responses.
func respondError(c *gin.Context, err error) {
	var (
		limitErr   *services.LimitError
		featureErr *services.FeatureError
	)

	switch {
	case errors.As(err, &limitErr):
		apierrors.LimitReached(c, limitErr.Resource, limitErr.Limit)
	case errors.As(err, &featureErr):
		apierrors.FeatureLocked(c, string(featureErr.Feature), string(featureErr.RequiredPlan()))

	case errors.Is(err, services.ErrProfileNotFound):
		apierrors.ProfileMissing(c)
	case errors.Is(err, services.ErrConfirmationRequired):
		apierrors.ConfirmationRequired(c, "Pass confirm=true to delete permanently")

	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())

	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidPlan),
		errors.Is(err, services.ErrInvalidTimezone),
		errors.Is(err, services.ErrTaskFieldsRequired),
		errors.Is(err, services.ErrInvalidDay),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrCannotInviteSelf),
		errors.Is(err, services.ErrMessageRequired),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidTime),
		errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrNotTeamAdmin),
		errors.Is(err, services.ErrNotTeamOwner),
		errors.Is(err, services.ErrCannotChangeOwner),
		errors.Is(err, services.ErrNotInviteRecipient),
		errors.Is(err, services.ErrPartnershipNotAccepted):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrNotTeamMember),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrPartnerNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInviteNotPending),
		errors.Is(err, services.ErrInviteExists),
		errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.RespondWithError(c, http.StatusUnprocessableEntity, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error()))

	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// currentUser answers 401 when there is no authenticated user.
func currentUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return userID, exists
}

// paramID parses a numeric path parameter, answering 400 on failure.
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON binds and validates the body, answering 400 with the validation
// message on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return false
	}
	return true
}
