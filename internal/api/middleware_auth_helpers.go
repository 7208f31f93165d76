package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/tripplanner/internal/models"
	"github.com/terraincognita07/tripplanner/internal/services"
)

// authenticateRequest verifies the bearer token and reloads the user, so a token
// outliving its account is rejected and the email used for invite matching is
// always the stored one.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokenValue, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return nil, err
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if services.NormalizeAuthEmail(user.Email) != services.NormalizeAuthEmail(claims.Email) {
		return nil, errors.New("token email no longer matches account")
	}
	return &user, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if len(header) <= len(bearerAuthHeaderPrefix) || !strings.EqualFold(header[:len(bearerAuthHeaderPrefix)], bearerAuthHeaderPrefix) {
		return "", errors.New("missing bearer token")
	}
	token := strings.TrimSpace(header[len(bearerAuthHeaderPrefix):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
