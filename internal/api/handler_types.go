package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/tripplanner/internal/services"
)

const (
	defaultAuthTokenTTL    = 7 * 24 * time.Hour
	loginAttemptsLimit     = 8
	loginAttemptsWindow    = 15 * time.Minute
	inviteTokenMissLimit   = 20
	inviteTokenMissWindow  = 10 * time.Minute
	contextUserKey         = "current_user"
	bearerAuthHeaderPrefix = "bearer "
)

type Handler struct {
	secretKey    []byte
	tokenTTL     time.Duration
	authService  *services.AuthService
	credits      *services.CreditService
	plans        *services.PlanService
	invites      *services.InviteService
	loginLimiter *attemptLimiter
	inviteMisses *attemptLimiter
}

// Dependencies are the services the HTTP layer exposes.
type Dependencies struct {
	Auth    *services.AuthService
	Credits *services.CreditService
	Plans   *services.PlanService
	Invites *services.InviteService
}

type authClaims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
