package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is a canonical direct message or email. ConversationID groups a
// thread (Facebook conversation id, Gmail thread id). SentAt is the
// platform-side timestamp, distinct from the local sync timestamp.
type Message struct {
	ID             uuid.UUID       `json:"id"`
	SocialPageID   uuid.UUID       `json:"social_page_id"`
	ExternalID     string          `json:"external_id"`
	ConversationID string          `json:"conversation_id"`
	Platform       string          `json:"platform"`
	Content        string          `json:"content"`
	SenderID       string          `json:"sender_id"`
	SenderName     *string         `json:"sender_name,omitempty"`
	IsFromPage     bool            `json:"is_from_page"`
	IsRead         bool            `json:"is_read"`
	Attachments    []string        `json:"attachments"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	SentAt         time.Time       `json:"sent_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Conversation is a per-thread summary derived from stored messages.
type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	LastMessageAt  time.Time `json:"last_message_at"`
	MessageCount   int       `json:"message_count"`
	UnreadCount    int       `json:"unread_count"`
	LastMessage    *Message  `json:"last_message,omitempty"`
}
