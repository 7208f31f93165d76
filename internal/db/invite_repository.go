package db

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/tripplanner/internal/models"
	"gorm.io/gorm"
)

// ErrInviteStateChanged means a conditional transition matched no row: the
// invite left the expected status, or its deadline passed, before the update ran.
var ErrInviteStateChanged = errors.New("invite state changed")

type InviteRepository struct {
	database *gorm.DB
}

func NewInviteRepository(database *gorm.DB) *InviteRepository {
	return &InviteRepository{database: database}
}

func (repo *InviteRepository) Create(invite *models.Invite) error {
	return repo.database.Create(invite).Error
}

func (repo *InviteRepository) FindByID(inviteID uint) (models.Invite, error) {
	var invite models.Invite
	if err := repo.database.First(&invite, inviteID).Error; err != nil {
		return models.Invite{}, err
	}
	return invite, nil
}

func (repo *InviteRepository) FindByToken(token string) (models.Invite, error) {
	var invite models.Invite
	if err := repo.database.Where("token = ?", token).First(&invite).Error; err != nil {
		return models.Invite{}, err
	}
	return invite, nil
}

func (repo *InviteRepository) FindPendingForEmail(planID uint, email string) (models.Invite, bool, error) {
	var invite models.Invite
	result := repo.database.
		Where("plan_id = ? AND lower(email) = ? AND status = ?", planID, email, models.InviteStatusPending).
		Limit(1).
		Find(&invite)
	if result.Error != nil {
		return models.Invite{}, false, result.Error
	}
	return invite, result.RowsAffected > 0, nil
}

func (repo *InviteRepository) ListByPlan(planID uint) ([]models.Invite, error) {
	invites := make([]models.Invite, 0)
	if err := repo.database.Where("plan_id = ?", planID).Order("created_at DESC, id DESC").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// Accept moves a live pending invite to accepted and grants access in one
// transaction. Only one concurrent caller can win the conditional update.
func (repo *InviteRepository) Accept(inviteID uint, access models.Access, now time.Time) (models.Access, error) {
	var granted models.Access
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Invite{}).
			Where("id = ? AND status = ? AND expires_at > ?", inviteID, models.InviteStatusPending, now).
			Updates(map[string]any{
				"status":       models.InviteStatusAccepted,
				"accepted_by":  access.UserID,
				"responded_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInviteStateChanged
		}

		created, err := grantOnce(tx, access)
		if err != nil {
			return err
		}
		granted = created
		return nil
	})
	if err != nil {
		return models.Access{}, err
	}
	return granted, nil
}

func (repo *InviteRepository) Reject(inviteID uint, now time.Time) error {
	return repo.transition(
		repo.database.Where("id = ? AND status = ? AND expires_at > ?", inviteID, models.InviteStatusPending, now),
		map[string]any{
			"status":       models.InviteStatusRejected,
			"responded_at": now,
		},
	)
}

// Expire invalidates a pending invite regardless of its deadline.
func (repo *InviteRepository) Expire(inviteID uint) error {
	return repo.transition(
		repo.database.Where("id = ? AND status = ?", inviteID, models.InviteStatusPending),
		map[string]any{"status": models.InviteStatusExpired},
	)
}

// Reissue returns a pending or expired invite to pending under a fresh token and deadline.
func (repo *InviteRepository) Reissue(inviteID uint, token string, expiresAt time.Time) error {
	return repo.transition(
		repo.database.Where("id = ? AND status IN ?", inviteID, []string{models.InviteStatusPending, models.InviteStatusExpired}),
		map[string]any{
			"status":       models.InviteStatusPending,
			"token":        token,
			"expires_at":   expiresAt,
			"accepted_by":  nil,
			"responded_at": nil,
		},
	)
}

// ExpireStale rewrites every pending invite whose deadline has passed.
func (repo *InviteRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).Model(&models.Invite{}).
		Where("status = ? AND expires_at <= ?", models.InviteStatusPending, now).
		Update("status", models.InviteStatusExpired)
	return result.RowsAffected, result.Error
}

func (repo *InviteRepository) transition(scope *gorm.DB, updates map[string]any) error {
	result := scope.Model(&models.Invite{}).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInviteStateChanged
	}
	return nil
}
