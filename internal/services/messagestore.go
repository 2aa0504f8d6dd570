package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

const messageColumns = `id, social_page_id, external_id, conversation_id, platform, content,
	sender_id, sender_name, is_from_page, is_read, attachments, metadata, sent_at, created_at, updated_at`

// MessageStore persists canonical messages keyed by (social_page_id,
// external_id).
type MessageStore struct {
	db *database.DB
}

func NewMessageStore(db *database.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Upsert reconciles one canonical message. Read-state is deliberately left
// untouched on conflict: a re-synced message must not flip back to unread.
func (s *MessageStore) Upsert(ctx context.Context, msg *models.Message) (*models.Message, error) {
	attachments := msg.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	var saved models.Message
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO messages (social_page_id, external_id, conversation_id, platform, content,
			sender_id, sender_name, is_from_page, is_read, attachments, metadata, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (social_page_id, external_id) DO UPDATE SET
			conversation_id = EXCLUDED.conversation_id,
			content = EXCLUDED.content,
			sender_id = EXCLUDED.sender_id,
			sender_name = EXCLUDED.sender_name,
			is_from_page = EXCLUDED.is_from_page,
			attachments = EXCLUDED.attachments,
			metadata = EXCLUDED.metadata,
			sent_at = EXCLUDED.sent_at,
			updated_at = NOW()
		RETURNING `+messageColumns+`
	`, msg.SocialPageID, msg.ExternalID, msg.ConversationID, msg.Platform, msg.Content,
		msg.SenderID, msg.SenderName, msg.IsFromPage, msg.IsRead, attachments, msg.Metadata, msg.SentAt).Scan(
		&saved.ID, &saved.SocialPageID, &saved.ExternalID, &saved.ConversationID, &saved.Platform,
		&saved.Content, &saved.SenderID, &saved.SenderName, &saved.IsFromPage, &saved.IsRead,
		&saved.Attachments, &saved.Metadata, &saved.SentAt, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert message: %w", err)
	}
	return &saved, nil
}

func (s *MessageStore) FindByExternalID(ctx context.Context, pageID uuid.UUID, externalID string) (*models.Message, error) {
	var msg models.Message
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+messageColumns+` FROM messages WHERE social_page_id = $1 AND external_id = $2
	`, pageID, externalID).Scan(
		&msg.ID, &msg.SocialPageID, &msg.ExternalID, &msg.ConversationID, &msg.Platform,
		&msg.Content, &msg.SenderID, &msg.SenderName, &msg.IsFromPage, &msg.IsRead,
		&msg.Attachments, &msg.Metadata, &msg.SentAt, &msg.CreatedAt, &msg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// FindWindowed reads a page's messages with inclusive platform-timestamp
// bounds, newest first, optionally restricted to one conversation.
func (s *MessageStore) FindWindowed(ctx context.Context, pageID uuid.UUID, conversationID string, since, until *time.Time, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 25
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE social_page_id = $1`
	args := []any{pageID}

	if conversationID != "" {
		args = append(args, conversationID)
		query += fmt.Sprintf(" AND conversation_id = $%d", len(args))
	}
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND sent_at >= $%d", len(args))
	}
	if until != nil {
		args = append(args, *until)
		query += fmt.Sprintf(" AND sent_at <= $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY sent_at DESC LIMIT $%d", len(args))

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID, &msg.SocialPageID, &msg.ExternalID, &msg.ConversationID, &msg.Platform,
			&msg.Content, &msg.SenderID, &msg.SenderName, &msg.IsFromPage, &msg.IsRead,
			&msg.Attachments, &msg.Metadata, &msg.SentAt, &msg.CreatedAt, &msg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Conversations summarizes a page's threads from stored messages: last
// activity, totals, unread count, and the latest message per thread.
func (s *MessageStore) Conversations(ctx context.Context, pageID uuid.UUID) ([]models.Conversation, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT conversation_id, MAX(sent_at) AS last_message_at, COUNT(*),
		       SUM(CASE WHEN is_read = FALSE THEN 1 ELSE 0 END)
		FROM messages
		WHERE social_page_id = $1
		GROUP BY conversation_id
		ORDER BY last_message_at DESC
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var conv models.Conversation
		if err := rows.Scan(&conv.ConversationID, &conv.LastMessageAt, &conv.MessageCount, &conv.UnreadCount); err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range conversations {
		latest, err := s.FindWindowed(ctx, pageID, conversations[i].ConversationID, nil, nil, 1)
		if err != nil {
			return nil, err
		}
		if len(latest) > 0 {
			conversations[i].LastMessage = &latest[0]
		}
	}
	return conversations, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, pageID, messageID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE messages SET is_read = TRUE, updated_at = NOW()
		WHERE id = $1 AND social_page_id = $2
	`, messageID, pageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *MessageStore) MarkConversationRead(ctx context.Context, pageID uuid.UUID, conversationID string) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE messages SET is_read = TRUE, updated_at = NOW()
		WHERE social_page_id = $1 AND conversation_id = $2 AND is_read = FALSE
	`, pageID, conversationID)
	return err
}
