package api

import (
	"errors"
	"time"
)

func NewHandler(secret string, deps Dependencies) (*Handler, error) {
	if len(secret) == 0 {
		return nil, errors.New("secret key is required")
	}
	if deps.Auth == nil || deps.Credits == nil || deps.Plans == nil || deps.Invites == nil {
		return nil, errors.New("auth, credit, plan and invite services are required")
	}

	return &Handler{
		secretKey:    []byte(secret),
		tokenTTL:     defaultAuthTokenTTL,
		authService:  deps.Auth,
		credits:      deps.Credits,
		plans:        deps.Plans,
		invites:      deps.Invites,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		inviteMisses: newAttemptLimiter(inviteTokenMissLimit, inviteTokenMissWindow),
	}, nil
}

func (handler *Handler) now() time.Time {
	return time.Now().UTC()
}
