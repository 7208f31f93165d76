package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users             AuthUserRepository
	signupFreeCredits int
}

func NewAuthService(users AuthUserRepository, signupFreeCredits int) *AuthService {
	if signupFreeCredits < 0 {
		signupFreeCredits = 0
	}
	return &AuthService{users: users, signupFreeCredits: signupFreeCredits}
}

// Register creates an account seeded with the signup allowance of free credits.
func (service *AuthService) Register(emailRaw string, passwordRaw string, displayNameRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: a valid email and password are required", ErrValidation)
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	displayName, err := NormalizeDisplayName(displayNameRaw)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: check email: %v", ErrStorage, err)
	}
	if exists {
		return models.User{}, fmt.Errorf("%w: %w", ErrConflict, ErrEmailAlreadyExists)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %v", ErrStorage, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		DisplayName:  displayName,
		FreeCredits:  service.signupFreeCredits,
	}
	if err := service.users.Create(&user); err != nil {
		if db.IsUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: %w", ErrConflict, ErrEmailAlreadyExists)
		}
		return models.User{}, fmt.Errorf("%w: create user: %v", ErrStorage, err)
	}
	return user, nil
}

// Authenticate returns ErrAuthCredentialsInvalid for any unknown email or wrong password.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if db.IsNotFound(err) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, fmt.Errorf("%w: load user: %v", ErrStorage, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, mapUserLookupError(err)
	}
	return user, nil
}
