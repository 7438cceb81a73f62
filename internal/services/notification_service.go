package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yukikurage/planner-api/internal/constants"
	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/notify"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

// NotificationService aggregates the notification feed.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	taskRepo         repository.TaskRepository
	calendarRepo     repository.CalendarRepository
	inviteRepo       repository.InviteRepository
	userRepo         repository.UserRepository
	profiles         *ProfileService
	publisher        realtime.Publisher
}

func NewNotificationService(repos *repository.Repositories, profiles *ProfileService, publisher realtime.Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: repos.Notifications,
		taskRepo:         repos.Tasks,
		calendarRepo:     repos.Calendar,
		inviteRepo:       repos.Invites,
		userRepo:         repos.Users,
		profiles:         profiles,
		publisher:        publisher,
	}
}

// Feed merges stored notifications with entries derived from pending tasks,
// today's events and open invites. The sources are read concurrently.
// Plans without notifications get a FeatureError; event entries also need
// the calendar.
func (s *NotificationService) Feed(ctx context.Context, userID uint64) (*notify.Feed, error) {
	profile, err := s.profiles.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ent := entitlement.Resolve(profile.Plan)
	if !ent.Allows(entitlement.FeatureNotifications) {
		return nil, &FeatureError{Feature: entitlement.FeatureNotifications}
	}
	today := s.profiles.Today(profile)

	var (
		persisted []models.Notification
		pending   int64
		events    []models.CalendarEvent
		invites   []models.Invite
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		persisted, err = s.notificationRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.taskRepo.CountPending(gctx, userID, today.Weekday().String())
		return err
	})
	if ent.Allows(entitlement.FeatureCalendar) {
		g.Go(func() error {
			day := today.Format(constants.DateLayout)
			var err error
			events, err = s.calendarRepo.ListRange(gctx, userID, day, day)
			return err
		})
	}
	g.Go(func() error {
		var err error
		invites, err = s.inviteRepo.ListPending(gctx, user.Email, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	derived := make([]notify.Entry, 0, len(events)+len(invites)+1)
	if entry, ok := notify.PendingTasks(pending, today); ok {
		derived = append(derived, entry)
	}
	for _, ev := range events {
		derived = append(derived, notify.Event(ev))
	}
	for _, inv := range invites {
		switch inv.Type {
		case models.InviteTypeTeam:
			derived = append(derived, notify.TeamInvite(inv))
		case models.InviteTypePartner:
			derived = append(derived, notify.PartnerInvite(inv))
		}
	}

	return notify.Build(persisted, derived), nil
}

// MarkRead persists the read flag for stored notifications. Derived entries
// have no row, so the result is false and they come back on the next fetch.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint64, id notify.FeedID) (bool, error) {
	pid, ok := id.(notify.PersistedID)
	if !ok {
		return false, nil
	}

	affected, err := s.notificationRepo.MarkRead(ctx, userID, pid.ID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected == 0 {
		return false, ErrNotificationNotFound
	}

	publish(ctx, s.publisher, tableNotifications, realtime.ActionUpdate, pid.ID, userID)
	return true, nil
}

// MarkAllRead flags every stored notification of the user and returns how
// many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	affected, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	if affected > 0 {
		publish(ctx, s.publisher, tableNotifications, realtime.ActionUpdate, 0, userID)
	}
	return affected, nil
}
