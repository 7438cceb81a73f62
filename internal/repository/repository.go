package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/utils"
)

var (
	// ErrInviteNotPending is returned when an invite has already been accepted or declined.
	ErrInviteNotPending = errors.New("invite repository: invite is not pending")
	// ErrAlreadyMember is returned when accepting a team invite for a user who is already a member.
	ErrAlreadyMember = errors.New("invite repository: user is already a team member")
	// ErrPartnerMissing is returned when a partner invite points at a partner row that no longer exists.
	ErrPartnerMissing = errors.New("invite repository: partner row missing")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and their profile within a single transaction.
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by e-mail address
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePasswordHash replaces the stored password hash
	UpdatePasswordHash(ctx context.Context, id uint64, hash string) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint64) (*models.Profile, error)

	// Update saves every column of the profile
	Update(ctx context.Context, profile *models.Profile) error

	// UpdateStreak stores a recomputed streak
	UpdateStreak(ctx context.Context, userID uint64, count int, lastCompleted *string) error

	// ListWithNotificationsEnabled returns the profiles that accept reminders
	ListWithNotificationsEnabled(ctx context.Context) ([]models.Profile, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task owned by userID
	FindByID(ctx context.Context, userID, id uint64) (*models.Task, error)

	// List returns tasks ordered by creation time, oldest first
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task owned by userID and reports the affected row count
	Delete(ctx context.Context, userID, id uint64) (int64, error)

	// CountProgress returns the completed and total task counts of a user
	CountProgress(ctx context.Context, userID uint64) (completed, total int64, err error)

	// CountPending counts the incomplete tasks scheduled on day
	CountPending(ctx context.Context, userID uint64, day string) (int64, error)

	// ListAll returns every task of a user
	ListAll(ctx context.Context, userID uint64) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID      uint64
	WorkspaceID *uint64
	Day         string
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context, userID uint64) ([]models.Category, error)
	Count(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, userID, id uint64) (int64, error)
}

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *models.Workspace) error
	FindByID(ctx context.Context, userID, id uint64) (*models.Workspace, error)
	List(ctx context.Context, userID uint64) ([]models.Workspace, error)
	Count(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, userID, id uint64) (int64, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithOwner creates a team and the owner's admin membership atomically
	CreateWithOwner(ctx context.Context, team *models.Team, owner *models.TeamMember) error

	// FindByID finds a team with its members
	FindByID(ctx context.Context, id uint64) (*models.Team, error)

	// CountOwned counts the teams owned by userID
	CountOwned(ctx context.Context, ownerID uint64) (int64, error)

	// Delete deletes a team, its members and its pending invites
	Delete(ctx context.Context, id uint64) error

	// FindMember finds a specific team member
	FindMember(ctx context.Context, teamID, userID uint64) (*models.TeamMember, error)

	// RemoveMember removes a member from a team
	RemoveMember(ctx context.Context, teamID, userID uint64) (int64, error)

	// UpdateMemberRole changes a member's role
	UpdateMemberRole(ctx context.Context, teamID, userID uint64, role models.TeamRole) (int64, error)

	// ListMembershipsByUserID lists all teams a user is a member of
	ListMembershipsByUserID(ctx context.Context, userID uint64) ([]models.TeamMember, error)
}

// InviteRepository defines the interface for invite data access
type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error

	// CreatePartnerInvite creates the pending partner row and its invite atomically
	CreatePartnerInvite(ctx context.Context, partner *models.Partner, invite *models.Invite) error

	// FindByID finds an invite with its sender and team
	FindByID(ctx context.Context, id uint64) (*models.Invite, error)

	// ListPending lists pending invites addressed to email, newest first
	ListPending(ctx context.Context, email string, inviteType *models.InviteType) ([]models.Invite, error)

	// HasPendingTeamInvite reports whether email already has a pending invite to the team
	HasPendingTeamInvite(ctx context.Context, teamID uint64, email string) (bool, error)

	// AcceptTeamInvite marks the invite accepted and adds userID as an editor in one transaction
	AcceptTeamInvite(ctx context.Context, inviteID, userID uint64) (*models.TeamMember, error)

	// AcceptPartnerInvite marks the invite accepted, creates a chat room if needed and
	// links the partner row in one transaction
	AcceptPartnerInvite(ctx context.Context, inviteID, userID uint64) (*models.Partner, error)

	// Decline marks the invite declined. No other rows are created.
	Decline(ctx context.Context, inviteID uint64) error
}

// PartnerRepository defines the interface for partner data access
type PartnerRepository interface {
	FindByID(ctx context.Context, id uint64) (*models.Partner, error)

	// ListForUser lists partnerships the user started or accepted
	ListForUser(ctx context.Context, userID uint64) ([]models.Partner, error)

	// HasOpenPartnership reports whether userID already has a pending or accepted partnership with email
	HasOpenPartnership(ctx context.Context, userID uint64, email string) (bool, error)
}

// ChatRepository defines the interface for chat room data access
type ChatRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error

	// ListMessages returns a page of messages, oldest first, and the total count
	ListMessages(ctx context.Context, roomID string, page utils.PaginationParams) ([]models.Message, int64, error)

	CreatePartnerTask(ctx context.Context, task *models.PartnerTask) error
	FindPartnerTask(ctx context.Context, roomID string, id uint64) (*models.PartnerTask, error)
	UpdatePartnerTask(ctx context.Context, task *models.PartnerTask) error
	ListPartnerTasks(ctx context.Context, roomID string) ([]models.PartnerTask, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint64) ([]models.Notification, error)

	// MarkRead flags one notification of userID as read
	MarkRead(ctx context.Context, userID, id uint64) (int64, error)

	// MarkAllRead flags every notification of userID as read
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)

	// DeleteByType removes every notification of the given type for userID
	DeleteByType(ctx context.Context, userID uint64, notificationType string) (int64, error)

	// HasUnread reports whether userID has an unread notification of the given type
	HasUnread(ctx context.Context, userID uint64, notificationType string) (bool, error)
}

// CalendarRepository defines the interface for calendar event data access
type CalendarRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error

	// ListRange lists events with from <= date <= to, ordered by date and time
	ListRange(ctx context.Context, userID uint64, from, to string) ([]models.CalendarEvent, error)

	Delete(ctx context.Context, userID, id uint64) (int64, error)
}
