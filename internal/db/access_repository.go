package db

import (
	"github.com/terraincognita07/tripplanner/internal/models"
	"gorm.io/gorm"
)

type AccessRepository struct {
	database *gorm.DB
}

func NewAccessRepository(database *gorm.DB) *AccessRepository {
	return &AccessRepository{database: database}
}

func (repo *AccessRepository) FindByPlanAndUser(planID uint, userID uint) (models.Access, bool, error) {
	var access models.Access
	result := repo.database.Where("plan_id = ? AND user_id = ?", planID, userID).Limit(1).Find(&access)
	if result.Error != nil {
		return models.Access{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Access{}, false, nil
	}
	return access, true, nil
}

func (repo *AccessRepository) ExistsForEmail(planID uint, email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Access{}).
		Joins("JOIN users ON users.id = accesses.user_id").
		Where("accesses.plan_id = ? AND lower(trim(users.email)) = ?", planID, email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *AccessRepository) ListByPlan(planID uint) ([]models.Access, error) {
	accesses := make([]models.Access, 0)
	if err := repo.database.Where("plan_id = ?", planID).Order("id ASC").Find(&accesses).Error; err != nil {
		return nil, err
	}
	return accesses, nil
}

// grantOnce inserts the access row or returns the existing one for (plan, user).
func grantOnce(tx *gorm.DB, access models.Access) (models.Access, error) {
	var existing models.Access
	result := tx.Where("plan_id = ? AND user_id = ?", access.PlanID, access.UserID).Limit(1).Find(&existing)
	if result.Error != nil {
		return models.Access{}, result.Error
	}
	if result.RowsAffected > 0 {
		return existing, nil
	}

	if err := tx.Create(&access).Error; err != nil {
		if !IsUniqueViolation(err) {
			return models.Access{}, err
		}
		if err := tx.Where("plan_id = ? AND user_id = ?", access.PlanID, access.UserID).First(&existing).Error; err != nil {
			return models.Access{}, err
		}
		return existing, nil
	}
	return access, nil
}
