package constants

const (
	// ContextKeyUserID is the key under which the authenticated user ID is stored
	// in both the session and the gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyEntitlements holds the resolved entitlements for the current request.
	ContextKeyEntitlements = "entitlements"

	// ContextKeyPartner holds the partnership loaded by RequirePartnerAccess.
	ContextKeyPartner = "partner"

	// ContextKeyTeamMember holds the membership loaded by RequireTeamAccess.
	ContextKeyTeamMember = "team_member"

	SessionCookieName = "planner_session"
	SessionMaxAge     = 86400 * 7

	MinPasswordLength = 8

	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200

	MaxSuggestedTasks = 20

	// DateLayout is the civil-date format used for calendar partitions and streaks.
	DateLayout = "2006-01-02"
	// TimeLayout is the wall-clock format used for optional event times.
	TimeLayout = "15:04"
)
