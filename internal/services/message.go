package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
)

// MessageService coordinates direct messages between the external platforms
// and the local store, mirroring the post flow: cached reads by default,
// refresh pulls and reconciles first.
type MessageService struct {
	accounts *AccountService
	store    *MessageStore
	adapters *platform.Registry
}

func NewMessageService(accounts *AccountService, store *MessageStore, adapters *platform.Registry) *MessageService {
	return &MessageService{accounts: accounts, store: store, adapters: adapters}
}

type MessageQuery struct {
	ConversationID string
	Since          *time.Time
	Until          *time.Time
	Limit          int
	Refresh        bool
}

// GetMessages returns a page's messages. Refresh fetches the platform's
// inbox first; items that fail to reconcile are logged and skipped.
func (s *MessageService) GetMessages(ctx context.Context, tenantID, pageID uuid.UUID, query MessageQuery) ([]models.Message, error) {
	page, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	if query.Refresh {
		if err := s.syncPage(ctx, page, query); err != nil {
			return nil, err
		}
	}

	return s.store.FindWindowed(ctx, pageID, query.ConversationID, query.Since, query.Until, query.Limit)
}

func (s *MessageService) syncPage(ctx context.Context, page *models.SocialPage, query MessageQuery) error {
	adapter, err := s.adapters.ForPlatform(page.Platform)
	if err != nil {
		return ErrInvalidPlatform
	}

	items, err := adapter.FetchContent(ctx, page.PageID, page.AccessToken, platform.KindMessage, platform.FetchOptions{
		Since: query.Since,
		Until: query.Until,
		Limit: query.Limit,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch messages from %s: %w", page.Platform, err)
	}

	for _, item := range items {
		if _, err := s.store.Upsert(ctx, itemToMessage(page, item)); err != nil {
			log.Printf("Failed to reconcile message %s on page %s: %v", item.ExternalID, page.ID, err)
		}
	}
	return nil
}

// GetConversations summarizes the page's threads from the store, refreshing
// from the platform first when asked.
func (s *MessageService) GetConversations(ctx context.Context, tenantID, pageID uuid.UUID, refresh bool) ([]models.Conversation, error) {
	page, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	if refresh {
		if err := s.syncPage(ctx, page, MessageQuery{}); err != nil {
			return nil, err
		}
	}

	return s.store.Conversations(ctx, pageID)
}

type SendMessageParams struct {
	RecipientID string
	Content     string
}

// SendMessage delivers through the platform and records the sent message as
// an already-read, page-authored row.
func (s *MessageService) SendMessage(ctx context.Context, tenantID, pageID uuid.UUID, params SendMessageParams) (*models.Message, error) {
	if params.Content == "" {
		return nil, ErrEmptyContent
	}

	page, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	adapter, err := s.adapters.ForPlatform(page.Platform)
	if err != nil {
		return nil, ErrInvalidPlatform
	}

	externalID, err := adapter.CreateContent(ctx, page.PageID, page.AccessToken, platform.CreateRequest{
		Kind:        platform.KindMessage,
		Content:     params.Content,
		RecipientID: params.RecipientID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message on %s: %w", page.Platform, err)
	}

	return s.store.Upsert(ctx, &models.Message{
		SocialPageID:   page.ID,
		ExternalID:     externalID,
		ConversationID: params.RecipientID,
		Platform:       page.Platform,
		Content:        params.Content,
		SenderID:       page.PageID,
		IsFromPage:     true,
		IsRead:         true,
		SentAt:         time.Now().UTC(),
	})
}

func (s *MessageService) MarkRead(ctx context.Context, tenantID, pageID, messageID uuid.UUID) error {
	if _, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID); err != nil {
		return err
	}
	return s.store.MarkRead(ctx, pageID, messageID)
}

func (s *MessageService) MarkConversationRead(ctx context.Context, tenantID, pageID uuid.UUID, conversationID string) error {
	if _, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID); err != nil {
		return err
	}
	return s.store.MarkConversationRead(ctx, pageID, conversationID)
}

func itemToMessage(page *models.SocialPage, item platform.Item) *models.Message {
	var senderName *string
	if item.SenderName != "" {
		senderName = &item.SenderName
	}
	return &models.Message{
		SocialPageID:   page.ID,
		ExternalID:     item.ExternalID,
		ConversationID: item.ConversationID,
		Platform:       page.Platform,
		Content:        item.Content,
		SenderID:       item.SenderID,
		SenderName:     senderName,
		IsFromPage:     item.SenderID == page.PageID,
		Attachments:    item.MediaURLs,
		Metadata:       item.Raw,
		SentAt:         item.Timestamp,
	}
}
