package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codelab-2026.net/internal/adapter/crypto"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/static/errs"
)

type fakeUserPort struct {
	users map[string]*domain.StaffUser
	err   error
}

func (f *fakeUserPort) GetByUserName(username string) (*domain.StaffUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[username], nil
}

func newAuthFixture(t *testing.T) (IAuthService, *crypto.JWTServiceImpl) {
	t.Helper()
	jwtSvc := &crypto.JWTServiceImpl{HMACSecretKey: "test-secret", TokenTTL: time.Minute}

	hash, err := jwtSvc.EncryptPassword(context.Background(), "correct-horse")
	if err != nil {
		t.Fatalf("encrypt password: %v", err)
	}

	users := &fakeUserPort{users: map[string]*domain.StaffUser{
		"teacher": {
			ID:           uuid.New(),
			UserName:     "teacher",
			PasswordHash: &hash,
			Role:         "staff",
		},
	}}
	return NewLocalAuthService(users, jwtSvc), jwtSvc
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, jwtSvc := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "teacher", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	valid, err := jwtSvc.VerifyTokenHMAC(ctx, token, "HS256")
	if err != nil || !valid {
		t.Fatalf("issued token does not verify: valid=%v err=%v", valid, err)
	}

	payload, err := jwtSvc.DecodeTokenPayload(ctx, token)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Username != "teacher" {
		t.Errorf("username = %q", payload.Username)
	}
	if !payload.HasPermission(domain.PermissionResetState) {
		t.Error("token missing reset permission")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "teacher", "wrong"); !errors.Is(err, errs.InvalidCredentials) {
		t.Fatalf("expected InvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "ghost", "any"); !errors.Is(err, errs.InvalidCredentials) {
		t.Fatalf("expected InvalidCredentials, got %v", err)
	}
}

func TestLoginUserWithoutPassword(t *testing.T) {
	jwtSvc := &crypto.JWTServiceImpl{HMACSecretKey: "test-secret", TokenTTL: time.Minute}
	users := &fakeUserPort{users: map[string]*domain.StaffUser{
		"teacher": {ID: uuid.New(), UserName: "teacher", Role: "staff"},
	}}
	svc := NewLocalAuthService(users, jwtSvc)

	if _, err := svc.Login(context.Background(), "teacher", "any"); !errors.Is(err, errs.InvalidCredentials) {
		t.Fatalf("expected InvalidCredentials, got %v", err)
	}
}
