package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UserResponse struct {
	ID                uuid.UUID   `json:"id"`
	Email             string      `json:"email"`
	FullName          string      `json:"full_name"`
	Role              string      `json:"role"`
	AdminPermissions  []string    `json:"admin_permissions,omitempty"`
	TenantPermissions []string    `json:"tenant_permissions,omitempty"`
	TenantID          *uuid.UUID  `json:"tenant_id,omitempty"`
	IsActive          bool        `json:"is_active"`
	LastLogin         *time.Time  `json:"last_login,omitempty"`
	AuthorizedPageIDs []uuid.UUID `json:"authorized_page_ids,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
