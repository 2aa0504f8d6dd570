package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, role string, tenantID *uuid.UUID, tenantPerms []string) string {
	t.Helper()
	token, err := jwtSvc.GenerateAccessToken(uuid.New(), "user@example.com", role, tenantID, nil, tenantPerms)
	require.NoError(t, err)
	return token
}

func TestAuth_MissingAuthorizationHeader(t *testing.T) {
	jwtSvc := newTestJWTService()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAuth_InvalidAuthorizationFormat(t *testing.T) {
	jwtSvc := newTestJWTService()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token some-token")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header format")
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtSvc := newTestJWTService()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestAuth_ValidToken_ClaimsOnContext(t *testing.T) {
	jwtSvc := newTestJWTService()
	tenantID := uuid.New()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Get("/protected", func(c *drift.Context) {
		assert.NotEqual(t, uuid.Nil, GetUserID(c))
		assert.Equal(t, "user@example.com", GetUserEmail(c))
		assert.Equal(t, models.RoleTenantUser, GetUserRole(c))
		require.NotNil(t, GetTenantID(c))
		assert.Equal(t, tenantID, *GetTenantID(c))
		assert.Equal(t, []string{models.PermViewPosts}, GetTenantPermissions(c))
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	token := generateTestToken(t, jwtSvc, models.RoleTenantUser, &tenantID, []string{models.PermViewPosts})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_Forbidden(t *testing.T) {
	jwtSvc := newTestJWTService()
	tenantID := uuid.New()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Use(RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
	app.Get("/admin-only", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	token := generateTestToken(t, jwtSvc, models.RoleTenantUser, &tenantID, nil)
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient role")
}

// Tenant admins bypass the permission check entirely.
func TestRequireTenantPermission_AdminBypass(t *testing.T) {
	jwtSvc := newTestJWTService()
	tenantID := uuid.New()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Get("/posts", RequireTenantPermission(models.PermViewPosts, func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	token := generateTestToken(t, jwtSvc, models.RoleTenantAdmin, &tenantID, nil)
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTenantPermission_EmployeeWithPermission(t *testing.T) {
	jwtSvc := newTestJWTService()
	tenantID := uuid.New()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Get("/posts", RequireTenantPermission(models.PermViewPosts, func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	token := generateTestToken(t, jwtSvc, models.RoleTenantUser, &tenantID, []string{models.PermViewPosts})
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTenantPermission_EmployeeWithoutPermission(t *testing.T) {
	jwtSvc := newTestJWTService()
	tenantID := uuid.New()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Get("/posts", RequireTenantPermission(models.PermCreatePosts, func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	token := generateTestToken(t, jwtSvc, models.RoleTenantUser, &tenantID, []string{models.PermViewPosts})
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient permissions")
}

func TestRequireAdminPermission_AdminWithoutPermission(t *testing.T) {
	jwtSvc := newTestJWTService()
	app := drift.New()

	app.Use(Auth(jwtSvc))
	app.Post("/tenants", RequireAdminPermission(models.PermManageTenants, func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	token, err := jwtSvc.GenerateAccessToken(uuid.New(), "admin@example.com", models.RoleAdmin, nil,
		[]string{models.PermViewStatistics}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/tenants", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
