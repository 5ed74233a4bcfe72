package service

import (
	"context"
	"strings"
	"time"

	"toolrental-backend/internal/config"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type adminAccount struct {
	admin        domain.Admin
	passwordHash []byte
}

type authService struct {
	admins   map[string]adminAccount
	tokenMgr security.TokenManager
}

// NewAuthService builds the login service over the configured admin accounts. Admin IDs are
// their 1-based position in the configuration.
func NewAuthService(accounts []config.AdminAccount, tokenMgr security.TokenManager) AuthService {
	admins := make(map[string]adminAccount, len(accounts))
	for i, a := range accounts {
		email := normalizeEmail(a.Email)
		name := a.Name
		if name == "" {
			name = email
		}
		admins[email] = adminAccount{
			admin:        domain.Admin{ID: int32(i + 1), Email: email, Name: name},
			passwordHash: []byte(a.PasswordHash),
		}
	}
	return &authService{admins: admins, tokenMgr: tokenMgr}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Admin, error) {
	account, ok := s.admins[normalizeEmail(email)]
	if !ok {
		logger.WarnContext(ctx, "Admin login failed", "reason", "unknown email")
		return "", time.Time{}, nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		logger.WarnContext(ctx, "Admin login failed", "reason", "wrong password", "admin_id", account.admin.ID)
		return "", time.Time{}, nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenMgr.GenerateAccessToken(account.admin.ID, account.admin.Email, []string{security.RoleAdmin})
	if err != nil {
		return "", time.Time{}, nil, err
	}
	admin := account.admin
	logger.InfoContext(ctx, "Admin logged in", "admin_id", admin.ID)
	return token, expiresAt, &admin, nil
}

func (s *authService) Me(ctx context.Context, email string) (*domain.Admin, error) {
	account, ok := s.admins[normalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	admin := account.admin
	return &admin, nil
}
