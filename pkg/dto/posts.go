package dto

import (
	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/models"
)

type CreatePostRequest struct {
	SocialPageID uuid.UUID `json:"social_page_id"`
	Platform     string    `json:"platform,omitempty"`
	Content      string    `json:"content"`
	MediaURLs    []string  `json:"media_urls,omitempty"`
}

// AggregatedPostsResponse carries posts across pages plus the pages whose
// refresh failed.
type AggregatedPostsResponse struct {
	Posts  []models.Post `json:"posts"`
	Errors []PageError   `json:"errors,omitempty"`
}

type PageError struct {
	PageID   string `json:"page_id"`
	PageName string `json:"page_name"`
	Error    string `json:"error"`
}
