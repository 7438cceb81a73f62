package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/planner-api/internal/entitlement"
)

var (
	ErrEmailTaken            = errors.New("email already registered")
	ErrEmailRequired         = errors.New("email is required")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrUserNotFound          = errors.New("user not found")
	ErrFailedToHashPassword  = errors.New("failed to hash password")
	ErrFailedToCreateUser    = errors.New("failed to create user")
	ErrFailedToCreateProfile = errors.New("failed to create profile")

	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidPlan     = errors.New("unknown plan")
	ErrInvalidTimezone = errors.New("unknown timezone")

	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskFieldsRequired   = errors.New("name, category and day are required")
	ErrInvalidDay           = errors.New("day must be a weekday name")
	ErrConfirmationRequired = errors.New("deletion must be confirmed")

	ErrCategoryNotFound  = errors.New("category not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrNameRequired      = errors.New("name is required")

	ErrTeamNotFound      = errors.New("team not found")
	ErrNotTeamMember     = errors.New("user is not a member of the team")
	ErrNotTeamAdmin      = errors.New("only team admins can perform this action")
	ErrNotTeamOwner      = errors.New("only the team owner can perform this action")
	ErrCannotChangeOwner = errors.New("the team owner cannot be removed or demoted")
	ErrInvalidRole       = errors.New("unknown team role")
	ErrMemberNotFound    = errors.New("team member not found")
	ErrAlreadyTeamMember = errors.New("user is already a member of the team")

	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteNotPending   = errors.New("invite has already been answered")
	ErrNotInviteRecipient = errors.New("invite is addressed to someone else")
	ErrCannotInviteSelf   = errors.New("you cannot invite yourself")
	ErrInviteExists       = errors.New("an open invite already exists")

	ErrPartnerNotFound        = errors.New("partner not found")
	ErrPartnershipNotAccepted = errors.New("partnership has not been accepted")
	ErrMessageRequired        = errors.New("message body is required")

	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidDate      = errors.New("date must be formatted YYYY-MM-DD")
	ErrInvalidTime      = errors.New("time must be formatted HH:MM")
	ErrInvalidDateRange = errors.New("from must not be after to")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// ErrLimitReached is wrapped by every LimitError.
var ErrLimitReached = errors.New("plan limit reached")

// LimitError reports which plan cap a create would exceed.
type LimitError struct {
	Resource string
	Limit    int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s limit of %d reached", e.Resource, e.Limit)
}

func (e *LimitError) Unwrap() error { return ErrLimitReached }

// ErrFeatureLocked is wrapped by every FeatureError.
var ErrFeatureLocked = errors.New("feature not included in plan")

// FeatureError names the locked feature and the cheapest plan unlocking it.
type FeatureError struct {
	Feature entitlement.Feature
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s requires the %s plan", e.Feature, e.RequiredPlan())
}

func (e *FeatureError) Unwrap() error { return ErrFeatureLocked }

func (e *FeatureError) RequiredPlan() entitlement.Plan {
	return entitlement.RequiredPlan(e.Feature)
}
