package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/services"
)

const (
	UserIDKey            = "user_id"
	UserEmailKey         = "user_email"
	UserRoleKey          = "user_role"
	TenantIDKey          = "tenant_id"
	AdminPermissionsKey  = "admin_permissions"
	TenantPermissionsKey = "tenant_permissions"
)

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Set(TenantIDKey, claims.TenantID)
		c.Set(AdminPermissionsKey, claims.AdminPermissions)
		c.Set(TenantPermissionsKey, claims.TenantPermissions)

		c.Next()
	}
}

// RequireRoles rejects authenticated requests whose role is not in the list.
func RequireRoles(roles ...string) drift.HandlerFunc {
	return func(c *drift.Context) {
		role := GetUserRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.Forbidden("insufficient role")
	}
}

// RequireTenantPermission wraps a handler so that tenant admins pass
// unconditionally and employees pass only when they carry the permission.
func RequireTenantPermission(perm string, next drift.HandlerFunc) drift.HandlerFunc {
	return func(c *drift.Context) {
		role := GetUserRole(c)
		if role == models.RoleTenantAdmin {
			next(c)
			return
		}
		if role == models.RoleTenantUser {
			for _, p := range GetTenantPermissions(c) {
				if p == perm {
					next(c)
					return
				}
			}
		}
		c.Forbidden("insufficient permissions")
	}
}

// RequireAdminPermission wraps a handler so that super admins pass
// unconditionally and platform admins pass only when they carry the
// permission.
func RequireAdminPermission(perm string, next drift.HandlerFunc) drift.HandlerFunc {
	return func(c *drift.Context) {
		role := GetUserRole(c)
		if role == models.RoleSuperAdmin {
			next(c)
			return
		}
		if role == models.RoleAdmin {
			for _, p := range GetAdminPermissions(c) {
				if p == perm {
					next(c)
					return
				}
			}
		}
		c.Forbidden("insufficient permissions")
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func GetUserRole(c *drift.Context) string {
	if role, ok := c.Get(UserRoleKey); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

func GetTenantID(c *drift.Context) *uuid.UUID {
	if id, ok := c.Get(TenantIDKey); ok {
		if tid, ok := id.(*uuid.UUID); ok {
			return tid
		}
	}
	return nil
}

func GetAdminPermissions(c *drift.Context) []string {
	if perms, ok := c.Get(AdminPermissionsKey); ok {
		if p, ok := perms.([]string); ok {
			return p
		}
	}
	return nil
}

func GetTenantPermissions(c *drift.Context) []string {
	if perms, ok := c.Get(TenantPermissionsKey); ok {
		if p, ok := perms.([]string); ok {
			return p
		}
	}
	return nil
}

// Actor rebuilds the acting user from the token claims stored on the
// context, enough for access decisions without a user lookup.
func Actor(c *drift.Context) *models.User {
	id := GetUserID(c)
	if id == uuid.Nil {
		return nil
	}
	return &models.User{
		ID:                id,
		Email:             GetUserEmail(c),
		Role:              GetUserRole(c),
		TenantID:          GetTenantID(c),
		AdminPermissions:  GetAdminPermissions(c),
		TenantPermissions: GetTenantPermissions(c),
	}
}
