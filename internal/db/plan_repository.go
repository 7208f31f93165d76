package db

import (
	"github.com/terraincognita07/tripplanner/internal/models"
	"gorm.io/gorm"
)

type PlanRepository struct {
	database *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

func (repo *PlanRepository) Create(plan *models.Plan) error {
	return repo.database.Create(plan).Error
}

func (repo *PlanRepository) FindByID(planID uint) (models.Plan, error) {
	var plan models.Plan
	if err := repo.database.First(&plan, planID).Error; err != nil {
		return models.Plan{}, err
	}
	return plan, nil
}

func (repo *PlanRepository) ListByOwner(ownerID uint) ([]models.Plan, error) {
	plans := make([]models.Plan, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (repo *PlanRepository) ListSharedWith(userID uint) ([]models.Plan, error) {
	plans := make([]models.Plan, 0)
	if err := repo.database.
		Joins("JOIN accesses ON accesses.plan_id = plans.id").
		Where("accesses.user_id = ?", userID).
		Order("plans.created_at DESC, plans.id DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (repo *PlanRepository) Save(plan *models.Plan) error {
	return repo.database.Save(plan).Error
}

// UpdateWeather writes the weather snapshot together with the generation flags.
func (repo *PlanRepository) UpdateWeather(plan models.Plan) error {
	result := repo.database.Model(&models.Plan{}).
		Where("id = ?", plan.ID).
		Updates(map[string]any{
			"weather":          plan.Weather,
			"generation_state": plan.GenerationState,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWithDependents removes the plan with its access grants and invites.
func (repo *PlanRepository) DeleteWithDependents(planID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Access{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Invite{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Plan{}, planID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
