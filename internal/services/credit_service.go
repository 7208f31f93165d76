package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/models"
)

type CreditUserRepository interface {
	LoadCredits(userID uint) (models.CreditBalance, error)
	DeductCredit(userID uint) (models.CreditBalance, error)
	AddCredits(userID uint, credits int, freeCredits int) (models.CreditBalance, error)
}

// CreditService is the credit ledger. Balances are only ever changed through
// single conditional updates in the repository.
type CreditService struct {
	users CreditUserRepository
}

func NewCreditService(users CreditUserRepository) *CreditService {
	return &CreditService{users: users}
}

func (service *CreditService) Balance(userID uint) (models.CreditBalance, error) {
	balance, err := service.users.LoadCredits(userID)
	if err != nil {
		return models.CreditBalance{}, mapUserLookupError(err)
	}
	return balance, nil
}

func (service *CreditService) HasCredit(userID uint) (bool, error) {
	balance, err := service.Balance(userID)
	if err != nil {
		return false, err
	}
	return balance.HasCredit(), nil
}

// Deduct consumes one free credit, or one paid credit once free credits are gone.
func (service *CreditService) Deduct(userID uint) (models.CreditBalance, error) {
	balance, err := service.users.DeductCredit(userID)
	if err != nil {
		if errors.Is(err, db.ErrNoCreditAvailable) {
			return models.CreditBalance{}, ErrInsufficientCredits
		}
		return models.CreditBalance{}, mapUserLookupError(err)
	}
	return balance, nil
}

func (service *CreditService) Grant(userID uint, credits int, freeCredits int) (models.CreditBalance, error) {
	if credits < 0 || freeCredits < 0 {
		return models.CreditBalance{}, fmt.Errorf("%w: credit grants must be non-negative", ErrValidation)
	}
	if credits == 0 && freeCredits == 0 {
		return models.CreditBalance{}, fmt.Errorf("%w: nothing to grant", ErrValidation)
	}
	balance, err := service.users.AddCredits(userID, credits, freeCredits)
	if err != nil {
		return models.CreditBalance{}, mapUserLookupError(err)
	}
	return balance, nil
}

func mapUserLookupError(err error) error {
	if db.IsNotFound(err) {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
