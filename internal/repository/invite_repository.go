package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/models"
)

type GormInviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &GormInviteRepository{db: db}
}

func (r *GormInviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *GormInviteRepository) CreatePartnerInvite(ctx context.Context, partner *models.Partner, invite *models.Invite) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(partner).Error; err != nil {
			return fmt.Errorf("create partner: %w", err)
		}

		invite.PartnerID = &partner.ID
		if err := tx.Create(invite).Error; err != nil {
			return fmt.Errorf("create invite: %w", err)
		}

		return nil
	})
}

func (r *GormInviteRepository) FindByID(ctx context.Context, id uint64) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.WithContext(ctx).Preload("Sender").Preload("Team").First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *GormInviteRepository) ListPending(ctx context.Context, email string, inviteType *models.InviteType) ([]models.Invite, error) {
	invites := []models.Invite{}

	query := r.db.WithContext(ctx).Preload("Sender").Preload("Team").
		Where("receiver_email = ? AND status = ?", email, models.InviteStatusPending)
	if inviteType != nil {
		query = query.Where("type = ?", *inviteType)
	}

	if err := query.Order("created_at DESC").Order("id DESC").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *GormInviteRepository) HasPendingTeamInvite(ctx context.Context, teamID uint64, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invite{}).
		Where("team_id = ? AND receiver_email = ? AND status = ?", teamID, email, models.InviteStatusPending).
		Count(&count).Error
	return count > 0, err
}

// resolve moves a pending invite to status. Zero affected rows means another
// request resolved it first.
func resolve(tx *gorm.DB, inviteID uint64, status models.InviteStatus) (*models.Invite, error) {
	now := time.Now().UTC()
	result := tx.Model(&models.Invite{}).
		Where("id = ? AND status = ?", inviteID, models.InviteStatusPending).
		Updates(map[string]interface{}{"status": status, "responded_at": now})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInviteNotPending
	}

	var invite models.Invite
	if err := tx.First(&invite, inviteID).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *GormInviteRepository) AcceptTeamInvite(ctx context.Context, inviteID, userID uint64) (*models.TeamMember, error) {
	var member *models.TeamMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invite, err := resolve(tx, inviteID, models.InviteStatusAccepted)
		if err != nil {
			return err
		}
		if invite.TeamID == nil {
			return fmt.Errorf("team invite %d has no team", inviteID)
		}

		var existing int64
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", *invite.TeamID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}

		member = &models.TeamMember{
			TeamID:   *invite.TeamID,
			UserID:   userID,
			Role:     models.TeamRoleEditor,
			JoinedAt: time.Now().UTC(),
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("create membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *GormInviteRepository) AcceptPartnerInvite(ctx context.Context, inviteID, userID uint64) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invite, err := resolve(tx, inviteID, models.InviteStatusAccepted)
		if err != nil {
			return err
		}
		if invite.PartnerID == nil {
			return ErrPartnerMissing
		}

		if err := tx.First(&partner, *invite.PartnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPartnerMissing
			}
			return err
		}

		if partner.ChatRoomID == nil {
			room := models.ChatRoom{ID: uuid.NewString()}
			if err := tx.Create(&room).Error; err != nil {
				return fmt.Errorf("create chat room: %w", err)
			}
			partner.ChatRoomID = &room.ID
		}

		partner.Status = models.PartnerStatusAccepted
		partner.PartnerID = &userID
		if err := tx.Save(&partner).Error; err != nil {
			return fmt.Errorf("link partner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *GormInviteRepository) Decline(ctx context.Context, inviteID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invite, err := resolve(tx, inviteID, models.InviteStatusDeclined)
		if err != nil {
			return err
		}
		if invite.PartnerID == nil {
			return nil
		}
		return tx.Model(&models.Partner{}).
			Where("id = ? AND status = ?", *invite.PartnerID, models.PartnerStatusPending).
			Update("status", models.PartnerStatusDeclined).Error
	})
}
