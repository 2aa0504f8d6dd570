package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTenantService(t *testing.T) (*TenantService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewTenantService(db), mock
}

func TestTenantService_Create(t *testing.T) {
	svc, mock := setupTenantService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO tenants`).
		WithArgs("Acme", (*string)(nil), 5).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "description", "max_social_pages", "is_active", "created_at", "updated_at",
		}).AddRow(tenantID, "Acme", (*string)(nil), 5, true, now, now))

	tenant, err := svc.Create(ctx, CreateTenantParams{Name: "Acme"})

	require.NoError(t, err)
	assert.Equal(t, tenantID, tenant.ID)
	assert.Equal(t, 5, tenant.MaxSocialPages, "page cap defaults when unset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantService_Create_NameTaken(t *testing.T) {
	svc, mock := setupTenantService(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO tenants`).
		WithArgs("Acme", (*string)(nil), 5).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(ctx, CreateTenantParams{Name: "Acme"})

	assert.ErrorIs(t, err, ErrTenantNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantService_Delete_StillHasUsers(t *testing.T) {
	svc, mock := setupTenantService(t)
	ctx := context.Background()
	tenantID := uuid.New()

	mock.ExpectExec(`DELETE FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := svc.Delete(ctx, tenantID)

	assert.ErrorIs(t, err, ErrTenantHasUsers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantService_Delete_NotFound(t *testing.T) {
	svc, mock := setupTenantService(t)
	ctx := context.Background()
	tenantID := uuid.New()

	mock.ExpectExec(`DELETE FROM tenants WHERE id`).
		WithArgs(tenantID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(ctx, tenantID)

	assert.ErrorIs(t, err, ErrTenantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
