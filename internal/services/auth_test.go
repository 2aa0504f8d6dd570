package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) (*AuthService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewAuthService(db), mock
}

func activeUserRows(t *testing.T, userID uuid.UUID, email, password, role string, tenantID *uuid.UUID) *pgxmock.Rows {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "role", "admin_permissions",
		"tenant_permissions", "tenant_id", "is_active", "last_login", "created_at", "updated_at",
	}).AddRow(
		userID, email, hash, "Test User", role, []string{},
		[]string{}, tenantID, true, (*time.Time)(nil), now, now,
	)
}

func TestAuthService_Login(t *testing.T) {
	svc, mock := setupAuthService(t)
	ctx := context.Background()
	userID := uuid.New()
	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1 AND is_active = TRUE`).
		WithArgs("user@example.com").
		WillReturnRows(activeUserRows(t, userID, "user@example.com", "correct-horse", models.RoleTenantAdmin, &tenantID))
	mock.ExpectExec(`UPDATE users SET last_login`).
		WithArgs(pgxmock.AnyArg(), userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	user, err := svc.Login(ctx, "user@example.com", "correct-horse", LoginTypeUser)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	require.NotNil(t, user.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mock := setupAuthService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1 AND is_active = TRUE`).
		WithArgs("user@example.com").
		WillReturnRows(activeUserRows(t, uuid.New(), "user@example.com", "correct-horse", models.RoleTenantUser, nil))

	_, err := svc.Login(ctx, "user@example.com", "wrong-password", LoginTypeUser)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An admin account cannot pass the tenant login endpoint even with the right
// password, and the failure is indistinguishable from bad credentials.
func TestAuthService_Login_RoleClassMismatch(t *testing.T) {
	svc, mock := setupAuthService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1 AND is_active = TRUE`).
		WithArgs("admin@example.com").
		WillReturnRows(activeUserRows(t, uuid.New(), "admin@example.com", "correct-horse", models.RoleSuperAdmin, nil))

	_, err := svc.Login(ctx, "admin@example.com", "correct-horse", LoginTypeUser)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, mock := setupAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	hash, err := HashPassword("current")
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT password_hash FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"password_hash"}).AddRow(hash))

	err = svc.ChangePassword(ctx, userID, "not-current", "new-password")

	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}
