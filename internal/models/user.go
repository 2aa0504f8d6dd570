package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles gate which endpoint families apply to a user. Permission sets gate
// actions within a family; the two are orthogonal.
const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleTenantAdmin = "tenant_admin"
	RoleTenantUser  = "tenant_user"
)

// Admin-level permissions (platform roles only).
const (
	PermManageTenants  = "manage_tenants"
	PermManageAdmins   = "manage_admins"
	PermViewStatistics = "view_statistics"
)

// Tenant-level permissions.
const (
	PermManageSocialPages = "manage_social_pages"
	PermViewPosts         = "view_posts"
	PermCreatePosts       = "create_posts"
	PermManageMessages    = "manage_messages"
	PermViewMessages      = "view_messages"
	PermManageEmployees   = "manage_employees"
	PermSendEmails        = "send_emails"
)

type User struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	FullName          string     `json:"full_name"`
	Role              string     `json:"role"`
	AdminPermissions  []string   `json:"admin_permissions"`
	TenantPermissions []string   `json:"tenant_permissions"`
	TenantID          *uuid.UUID `json:"tenant_id,omitempty"`
	IsActive          bool       `json:"is_active"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Populated on demand for employees; pages the user may act on.
	AuthorizedPageIDs []uuid.UUID `json:"authorized_page_ids,omitempty"`
}

// IsPlatformRole reports whether the user operates above tenants.
func (u *User) IsPlatformRole() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin
}

// HasPermission checks both permission sets for the given token.
func (u *User) HasPermission(perm string) bool {
	for _, p := range u.AdminPermissions {
		if p == perm {
			return true
		}
	}
	for _, p := range u.TenantPermissions {
		if p == perm {
			return true
		}
	}
	return false
}
