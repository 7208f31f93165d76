package models

import "time"

const DefaultSignupFreeCredits = 3

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DisplayName  string    `gorm:"not null;default:''" json:"display_name"`
	Credits      int       `gorm:"not null;default:0" json:"credits"`
	FreeCredits  int       `gorm:"not null;default:0" json:"free_credits"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreditBalance struct {
	Credits     int `json:"credits"`
	FreeCredits int `json:"free_credits"`
}

func (balance CreditBalance) Total() int {
	return balance.Credits + balance.FreeCredits
}

func (balance CreditBalance) HasCredit() bool {
	return balance.FreeCredits > 0 || balance.Credits > 0
}
