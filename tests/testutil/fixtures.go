package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/services"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateTenant creates a test tenant with default values
func (f *Fixtures) CreateTenant(t *testing.T, opts ...TenantOption) *models.Tenant {
	t.Helper()
	f.counter++

	tenant := &models.Tenant{
		Name:           fmt.Sprintf("Tenant %d", f.counter),
		MaxSocialPages: 5,
	}
	for _, opt := range opts {
		opt(tenant)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO tenants (name, description, max_social_pages)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, max_social_pages, is_active, created_at, updated_at
	`, tenant.Name, tenant.Description, tenant.MaxSocialPages).Scan(
		&tenant.ID, &tenant.Name, &tenant.Description, &tenant.MaxSocialPages,
		&tenant.IsActive, &tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	return tenant
}

// TenantOption configures a test tenant
type TenantOption func(*models.Tenant)

// WithMaxPages sets the tenant's social page cap
func WithMaxPages(n int) TenantOption {
	return func(tn *models.Tenant) {
		tn.MaxSocialPages = n
	}
}

// CreateUser creates a test user with default values (tenant employee)
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		FullName: fmt.Sprintf("Test User %d", f.counter),
		Role:     models.RoleTenantUser,
	}
	for _, opt := range opts {
		opt(user)
	}

	hash, err := services.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	adminPerms := user.AdminPermissions
	if adminPerms == nil {
		adminPerms = []string{}
	}
	tenantPerms := user.TenantPermissions
	if tenantPerms == nil {
		tenantPerms = []string{}
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, role, admin_permissions, tenant_permissions, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, full_name, role, admin_permissions, tenant_permissions, tenant_id, is_active, created_at, updated_at
	`, user.Email, hash, user.FullName, user.Role, adminPerms, tenantPerms, user.TenantID).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Role,
		&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// WithTenant binds the user to a tenant
func WithTenant(tenant *models.Tenant) UserOption {
	return func(u *models.User) {
		u.TenantID = &tenant.ID
	}
}

// WithTenantPermissions sets the user's tenant permission list
func WithTenantPermissions(perms ...string) UserOption {
	return func(u *models.User) {
		u.TenantPermissions = perms
	}
}

// CreateSocialPage creates a connected page for a tenant
func (f *Fixtures) CreateSocialPage(t *testing.T, tenant *models.Tenant, opts ...PageOption) *models.SocialPage {
	t.Helper()
	f.counter++

	page := &models.SocialPage{
		TenantID:    tenant.ID,
		Name:        fmt.Sprintf("Page %d", f.counter),
		Platform:    models.PlatformFacebook,
		PageID:      fmt.Sprintf("ext-page-%d", f.counter),
		AccessToken: "test-token",
	}
	for _, opt := range opts {
		opt(page)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO social_pages (tenant_id, name, platform, page_id, access_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant_id, name, platform, page_id, status, created_at, updated_at
	`, page.TenantID, page.Name, page.Platform, page.PageID, page.AccessToken).Scan(
		&page.ID, &page.TenantID, &page.Name, &page.Platform, &page.PageID,
		&page.Status, &page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create social page: %v", err)
	}
	return page
}

// PageOption configures a test social page
type PageOption func(*models.SocialPage)

// WithPlatform sets the page's platform
func WithPlatform(platform string) PageOption {
	return func(p *models.SocialPage) {
		p.Platform = platform
	}
}

// GrantPage grants a user explicit access to a page
func (f *Fixtures) GrantPage(t *testing.T, userID, pageID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO user_page_grants (user_id, page_id) VALUES ($1, $2)
		ON CONFLICT (user_id, page_id) DO NOTHING
	`, userID, pageID)
	if err != nil {
		t.Fatalf("failed to grant page access: %v", err)
	}
}
