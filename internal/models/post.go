package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Post is a canonical, platform-agnostic record of a published item.
// PostedAt is the platform-side timestamp; CreatedAt is when the row was
// first synced locally and survives reconciliation.
type Post struct {
	ID           uuid.UUID       `json:"id"`
	SocialPageID uuid.UUID       `json:"social_page_id"`
	ExternalID   string          `json:"external_id"`
	Platform     string          `json:"platform"`
	Content      string          `json:"content"`
	MediaURLs    []string        `json:"media_urls"`
	Likes        int             `json:"likes"`
	Comments     int             `json:"comments"`
	Shares       int             `json:"shares"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	PostedAt     time.Time       `json:"posted_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
