package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	SocialPageID uuid.UUID `json:"social_page_id"`
	RecipientID  string    `json:"recipient_id"`
	Content      string    `json:"content"`
}
