package auth

import (
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/global/logger"
	"gitlab.com/codelab-2026.net/internal/static/errs"
)

var _ IAuthService = &localAuthService{}

type localAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
) IAuthService {
	return &localAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
	}
}

func (g localAuthService) Login(ctx context.Context, username, password string) (string, error) {
	usr, err := g.userPort.GetByUserName(username)
	if err != nil {
		return "", errs.InvalidCredentials
	}
	if usr == nil || usr.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, password)
	if err != nil || !valid {
		return "", errs.InvalidCredentials
	}

	authPayload := domain.AuthPayload{
		Username:   usr.UserName,
		Permission: []string{domain.PermissionResetState},
	}

	raw, err := json.Marshal(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		logger.Error("Failed to build auth claims", "error", err)
		return "", errs.InternalError
	}

	token, err := g.jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, claims)
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}
