package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformGmail     = "gmail"
)

const (
	PageStatusActive       = "active"
	PageStatusInactive     = "inactive"
	PageStatusTokenExpired = "token_expired"
)

// SocialPage is a connected external account: a Facebook page, an Instagram
// business account, or a Gmail mailbox. PageID is the platform-native
// identifier; (TenantID, Platform, PageID) is unique.
type SocialPage struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Name           string          `json:"name"`
	Platform       string          `json:"platform"`
	PageID         string          `json:"page_id"`
	AccessToken    string          `json:"-"`
	RefreshToken   *string         `json:"-"`
	TokenExpiresAt *time.Time      `json:"token_expires_at,omitempty"`
	Status         string          `json:"status"`
	ProfilePicture *string         `json:"profile_picture,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ValidPlatform(platform string) bool {
	switch platform {
	case PlatformFacebook, PlatformInstagram, PlatformGmail:
		return true
	}
	return false
}
