package db

import (
	"errors"

	"github.com/terraincognita07/tripplanner/internal/models"
	"gorm.io/gorm"
)

var ErrNoCreditAvailable = errors.New("no credit available")

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) LoadCredits(userID uint) (models.CreditBalance, error) {
	var user models.User
	if err := repo.database.Select("id", "credits", "free_credits").First(&user, userID).Error; err != nil {
		return models.CreditBalance{}, err
	}
	return models.CreditBalance{Credits: user.Credits, FreeCredits: user.FreeCredits}, nil
}

// DeductCredit consumes one credit in a single conditional UPDATE: a free credit
// when one is left, otherwise a paid credit. Both CASE branches read the row as
// it was before the update, so concurrent callers cannot both pass the guard on
// the last credit. ErrNoCreditAvailable means no row changed.
func (repo *UserRepository) DeductCredit(userID uint) (models.CreditBalance, error) {
	result := repo.database.Model(&models.User{}).
		Where("id = ? AND (free_credits > 0 OR credits > 0)", userID).
		Updates(map[string]any{
			"free_credits": gorm.Expr("CASE WHEN free_credits > 0 THEN free_credits - 1 ELSE free_credits END"),
			"credits":      gorm.Expr("CASE WHEN free_credits > 0 THEN credits ELSE credits - 1 END"),
		})
	if result.Error != nil {
		return models.CreditBalance{}, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := repo.LoadCredits(userID); err != nil {
			return models.CreditBalance{}, err
		}
		return models.CreditBalance{}, ErrNoCreditAvailable
	}
	return repo.LoadCredits(userID)
}

func (repo *UserRepository) AddCredits(userID uint, credits int, freeCredits int) (models.CreditBalance, error) {
	if credits < 0 || freeCredits < 0 {
		return models.CreditBalance{}, errors.New("credit grants must be non-negative")
	}
	result := repo.database.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"credits":      gorm.Expr("credits + ?", credits),
			"free_credits": gorm.Expr("free_credits + ?", freeCredits),
		})
	if result.Error != nil {
		return models.CreditBalance{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CreditBalance{}, gorm.ErrRecordNotFound
	}
	return repo.LoadCredits(userID)
}

func (repo *UserRepository) UpdatePasswordHash(userID uint, passwordHash string) error {
	result := repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
