package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/mailer"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
	"github.com/yukikurage/planner-api/internal/utils"
)

// InviteService handles team and partner invitations.
type InviteService struct {
	inviteRepo       repository.InviteRepository
	teamRepo         repository.TeamRepository
	userRepo         repository.UserRepository
	partnerRepo      repository.PartnerRepository
	notificationRepo repository.NotificationRepository
	profiles         *ProfileService
	mail             mailer.Sender
	baseURL          string
	publisher        realtime.Publisher
	metrics          *metrics.Metrics
	log              logrus.FieldLogger
}

// NewInviteService creates a new InviteService. baseURL is the web client
// origin used to build the links in invitation e-mails.
func NewInviteService(repos *repository.Repositories, profiles *ProfileService, mail mailer.Sender, baseURL string, publisher realtime.Publisher, m *metrics.Metrics, log logrus.FieldLogger) *InviteService {
	return &InviteService{
		inviteRepo:       repos.Invites,
		teamRepo:         repos.Teams,
		userRepo:         repos.Users,
		partnerRepo:      repos.Partners,
		notificationRepo: repos.Notifications,
		profiles:         profiles,
		mail:             mail,
		baseURL:          baseURL,
		publisher:        publisher,
		metrics:          m,
		log:              log,
	}
}

// InviteOutcome is the result of accepting an invite. Exactly one of Member
// and Partner is set.
type InviteOutcome struct {
	Invite  *models.Invite     `json:"invite"`
	Member  *models.TeamMember `json:"member,omitempty"`
	Partner *models.Partner    `json:"partner,omitempty"`
}

// SendTeamInvite invites email to teamID. Only team admins may invite.
func (s *InviteService) SendTeamInvite(ctx context.Context, senderID, teamID uint64, email string) (*models.Invite, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := s.profiles.RequireFeature(ctx, senderID, entitlement.FeatureTeams); err != nil {
		return nil, err
	}

	member, err := s.teamRepo.FindMember(ctx, teamID, senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	if member.Role != models.TeamRoleAdmin {
		return nil, ErrNotTeamAdmin
	}

	sender, err := s.sender(ctx, senderID, email)
	if err != nil {
		return nil, err
	}

	invitee, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if invitee != nil {
		if _, err := s.teamRepo.FindMember(ctx, teamID, invitee.ID); err == nil {
			return nil, ErrAlreadyTeamMember
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find membership: %w", err)
		}
	}

	exists, err := s.inviteRepo.HasPendingTeamInvite(ctx, teamID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check invites: %w", err)
	}
	if exists {
		return nil, ErrInviteExists
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	invite := &models.Invite{
		Type:          models.InviteTypeTeam,
		SenderID:      senderID,
		ReceiverEmail: email,
		Status:        models.InviteStatusPending,
		TeamID:        &teamID,
		Token:         token,
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	teamName := "a team"
	if team, err := s.teamRepo.FindByID(ctx, teamID); err == nil {
		teamName = team.Name
	}
	s.sendMail(ctx, invite, fmt.Sprintf("%s invited you to join %s", sender.Email, teamName))
	s.announce(ctx, invite, senderID, invitee)
	return invite, nil
}

// SendPartnerInvite creates a pending partnership and the invite for it.
func (s *InviteService) SendPartnerInvite(ctx context.Context, senderID uint64, email string) (*models.Invite, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := s.profiles.RequireFeature(ctx, senderID, entitlement.FeaturePartners); err != nil {
		return nil, err
	}

	sender, err := s.sender(ctx, senderID, email)
	if err != nil {
		return nil, err
	}

	open, err := s.partnerRepo.HasOpenPartnership(ctx, senderID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check partnerships: %w", err)
	}
	if open {
		return nil, ErrInviteExists
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	partner := &models.Partner{
		UserID:       senderID,
		PartnerEmail: email,
		Status:       models.PartnerStatusPending,
	}
	invite := &models.Invite{
		Type:          models.InviteTypePartner,
		SenderID:      senderID,
		ReceiverEmail: email,
		Status:        models.InviteStatusPending,
		Token:         token,
	}
	if err := s.inviteRepo.CreatePartnerInvite(ctx, partner, invite); err != nil {
		return nil, fmt.Errorf("failed to create partner invite: %w", err)
	}

	invitee, err := s.findUserByEmail(ctx, email)
	if err != nil {
		s.log.WithError(err).Warn("Failed to look up invitee")
	}

	s.sendMail(ctx, invite, fmt.Sprintf("%s wants to be your accountability partner", sender.Email))
	publish(ctx, s.publisher, tablePartners, realtime.ActionInsert, partner.ID, senderID)
	s.announce(ctx, invite, senderID, invitee)
	return invite, nil
}

// ListPending lists the pending invites addressed to the user.
func (s *InviteService) ListPending(ctx context.Context, userID uint64) ([]models.Invite, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	invites, err := s.inviteRepo.ListPending(ctx, user.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// Accept resolves the invite and creates the membership or partnership in
// the same transaction.
func (s *InviteService) Accept(ctx context.Context, userID, inviteID uint64) (*InviteOutcome, error) {
	invite, err := s.addressedInvite(ctx, userID, inviteID)
	if err != nil {
		return nil, err
	}

	outcome := &InviteOutcome{Invite: invite}
	switch invite.Type {
	case models.InviteTypeTeam:
		member, err := s.inviteRepo.AcceptTeamInvite(ctx, inviteID, userID)
		if err != nil {
			return nil, mapResolveError(err)
		}
		outcome.Member = member
		publish(ctx, s.publisher, tableTeamMembers, realtime.ActionInsert, member.TeamID, userID, invite.SenderID)
	case models.InviteTypePartner:
		partner, err := s.inviteRepo.AcceptPartnerInvite(ctx, inviteID, userID)
		if err != nil {
			return nil, mapResolveError(err)
		}
		outcome.Partner = partner
		publish(ctx, s.publisher, tablePartners, realtime.ActionUpdate, partner.ID, userID, invite.SenderID)
	default:
		return nil, fmt.Errorf("unknown invite type %q", invite.Type)
	}

	invite.Status = models.InviteStatusAccepted
	s.resolved(ctx, invite, userID, "accepted")
	return outcome, nil
}

// Decline marks the invite declined. Nothing else is created.
func (s *InviteService) Decline(ctx context.Context, userID, inviteID uint64) (*models.Invite, error) {
	invite, err := s.addressedInvite(ctx, userID, inviteID)
	if err != nil {
		return nil, err
	}

	if err := s.inviteRepo.Decline(ctx, inviteID); err != nil {
		return nil, mapResolveError(err)
	}
	if invite.PartnerID != nil {
		publish(ctx, s.publisher, tablePartners, realtime.ActionUpdate, *invite.PartnerID, invite.SenderID)
	}

	invite.Status = models.InviteStatusDeclined
	s.resolved(ctx, invite, userID, "declined")
	return invite, nil
}

func (s *InviteService) addressedInvite(ctx context.Context, userID, inviteID uint64) (*models.Invite, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	invite, err := s.inviteRepo.FindByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	if invite.ReceiverEmail != user.Email {
		return nil, ErrNotInviteRecipient
	}
	if invite.Status != models.InviteStatusPending {
		return nil, ErrInviteNotPending
	}
	return invite, nil
}

// resolved records the outcome and tells the sender.
func (s *InviteService) resolved(ctx context.Context, invite *models.Invite, userID uint64, outcome string) {
	s.metrics.IncInviteResolved(string(invite.Type), outcome)
	publish(ctx, s.publisher, tableInvites, realtime.ActionUpdate, invite.ID, userID, invite.SenderID)

	notifyUser(ctx, s.notificationRepo, s.publisher, s.log, &models.Notification{
		UserID:  invite.SenderID,
		Type:    models.NotificationTypeInviteResult,
		Title:   fmt.Sprintf("Invitation %s", outcome),
		Message: fmt.Sprintf("%s %s your %s invitation", invite.ReceiverEmail, outcome, invite.Type),
	})
}

func (s *InviteService) announce(ctx context.Context, invite *models.Invite, senderID uint64, invitee *models.User) {
	publish(ctx, s.publisher, tableInvites, realtime.ActionInsert, invite.ID, senderID)
	if invitee != nil {
		publish(ctx, s.publisher, tableInvites, realtime.ActionInsert, invite.ID, invitee.ID)
	}
}

// sendMail is best-effort; the invite stays valid when delivery fails.
func (s *InviteService) sendMail(ctx context.Context, invite *models.Invite, subject string) {
	link := fmt.Sprintf("%s/invites?token=%s", s.baseURL, invite.Token)
	err := s.mail.Send(ctx, mailer.Message{
		To:      invite.ReceiverEmail,
		Subject: subject,
		Text:    fmt.Sprintf("%s.\n\nOpen %s to accept or decline.", subject, link),
		HTML:    fmt.Sprintf("<p>%s.</p><p><a href=\"%s\">Accept or decline</a></p>", subject, link),
	})
	if err != nil {
		s.metrics.IncEmailFailed()
		s.log.WithError(err).WithFields(logrus.Fields{
			"invite_id": invite.ID,
			"type":      invite.Type,
		}).Warn("Failed to send invite e-mail")
	}
}

func (s *InviteService) sender(ctx context.Context, senderID uint64, email string) (*models.User, error) {
	sender, err := s.user(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender.Email == email {
		return nil, ErrCannotInviteSelf
	}
	return sender, nil
}

func (s *InviteService) user(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// findUserByEmail returns nil without error when nobody has registered email yet.
func (s *InviteService) findUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func mapResolveError(err error) error {
	switch {
	case errors.Is(err, repository.ErrInviteNotPending):
		return ErrInviteNotPending
	case errors.Is(err, repository.ErrAlreadyMember):
		return ErrAlreadyTeamMember
	case errors.Is(err, repository.ErrPartnerMissing):
		return ErrPartnerNotFound
	default:
		return fmt.Errorf("failed to resolve invite: %w", err)
	}
}
