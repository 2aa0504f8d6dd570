package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("old password is incorrect")
)

// LoginType separates the tenant-facing and platform-facing login endpoints:
// each accepts only its own role class.
type LoginType string

const (
	LoginTypeUser  LoginType = "user"
	LoginTypeAdmin LoginType = "admin"
)

type AuthService struct {
	db *database.DB
}

func NewAuthService(db *database.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Login(ctx context.Context, email, password string, loginType LoginType) (*models.User, error) {
	user, err := s.findActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	switch loginType {
	case LoginTypeAdmin:
		if user.Role != models.RoleSuperAdmin && user.Role != models.RoleAdmin {
			return nil, ErrInvalidCredentials
		}
	case LoginTypeUser:
		if user.Role != models.RoleTenantAdmin && user.Role != models.RoleTenantUser {
			return nil, ErrInvalidCredentials
		}
	}

	now := time.Now()
	if _, err := s.db.Pool.Exec(ctx, `
		UPDATE users SET last_login = $1, updated_at = NOW() WHERE id = $2
	`, now, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	var passwordHash string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE id = $1
	`, userID).Scan(&passwordHash)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	newHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, newHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *AuthService) findActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, role, admin_permissions, tenant_permissions,
		       tenant_id, is_active, last_login, created_at, updated_at
		FROM users WHERE email = $1 AND is_active = TRUE
	`, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
		&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
