package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

// Realtime table names.
const (
	tableTasks         = "tasks"
	tableCategories    = "categories"
	tableWorkspaces    = "workspaces"
	tableProfiles      = "profiles"
	tableTeams         = "teams"
	tableTeamMembers   = "team_members"
	tableInvites       = "invites"
	tablePartners      = "partners"
	tableMessages      = "messages"
	tablePartnerTasks  = "partner_tasks"
	tableNotifications = "notifications"
	tableCalendar      = "calendar_events"
)

func publish(ctx context.Context, pub realtime.Publisher, table string, action realtime.Action, id uint64, userIDs ...uint64) {
	for _, userID := range userIDs {
		pub.Publish(ctx, realtime.NewEvent(table, action, id, userID))
	}
}

// notifyUser stores a notification and announces it. Failures are logged only.
func notifyUser(ctx context.Context, repo repository.NotificationRepository, pub realtime.Publisher, log logrus.FieldLogger, n *models.Notification) {
	if err := repo.Create(ctx, n); err != nil {
		log.WithError(err).WithFields(logrus.Fields{"user_id": n.UserID, "type": n.Type}).Warn("Failed to create notification")
		return
	}
	publish(ctx, pub, tableNotifications, realtime.ActionInsert, n.ID, n.UserID)
}
