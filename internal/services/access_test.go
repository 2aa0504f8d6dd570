package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccessService(t *testing.T) (*AccessService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewAccessService(db), mock
}

func tenantActor(role string, tenantID uuid.UUID) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Role:     role,
		TenantID: &tenantID,
	}
}

func TestAccessService_TenantAdminOwnTenantPage(t *testing.T) {
	svc, mock := setupAccessService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	pageID := uuid.New()
	actor := tenantActor(models.RoleTenantAdmin, tenantID)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM social_pages`).
		WithArgs(pageID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := svc.CanAccessPage(ctx, actor, pageID)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_TenantAdminForeignTenantPage(t *testing.T) {
	svc, mock := setupAccessService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	pageID := uuid.New()
	actor := tenantActor(models.RoleTenantAdmin, tenantID)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM social_pages`).
		WithArgs(pageID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := svc.CanAccessPage(ctx, actor, pageID)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_EmployeeWithGrant(t *testing.T) {
	svc, mock := setupAccessService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	pageID := uuid.New()
	actor := tenantActor(models.RoleTenantUser, tenantID)

	mock.ExpectQuery(`SELECT EXISTS\(\s*SELECT 1 FROM user_page_grants`).
		WithArgs(actor.ID, pageID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := svc.CanAccessPage(ctx, actor, pageID)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_EmployeeWithoutGrant(t *testing.T) {
	svc, mock := setupAccessService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	pageID := uuid.New()
	actor := tenantActor(models.RoleTenantUser, tenantID)

	mock.ExpectQuery(`SELECT EXISTS\(\s*SELECT 1 FROM user_page_grants`).
		WithArgs(actor.ID, pageID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := svc.CanAccessPage(ctx, actor, pageID)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Actors without a tenant association are denied without touching the
// database at all.
func TestAccessService_NoTenantAssociation(t *testing.T) {
	svc, mock := setupAccessService(t)
	ctx := context.Background()

	ok, err := svc.CanAccessPage(ctx, &models.User{ID: uuid.New(), Role: models.RoleAdmin}, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanAccessPage(ctx, nil, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_RequirePageAccess_Denied(t *testing.T) {
	svc, mock := setupAccessService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	pageID := uuid.New()
	actor := tenantActor(models.RoleTenantUser, tenantID)

	mock.ExpectQuery(`SELECT EXISTS\(\s*SELECT 1 FROM user_page_grants`).
		WithArgs(actor.ID, pageID, tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err := svc.RequirePageAccess(ctx, actor, pageID)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
