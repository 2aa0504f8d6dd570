package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
)

var ErrNotGmailPage = errors.New("page is not a gmail account")

// EmailService exposes the mail-specific operations that go beyond the
// uniform adapter surface: arbitrary recipients, Cc/Bcc and threaded
// replies. Reads are served live from Gmail rather than the local store.
type EmailService struct {
	accounts *AccountService
	gmail    *platform.GmailAdapter
}

func NewEmailService(accounts *AccountService, gmail *platform.GmailAdapter) *EmailService {
	return &EmailService{accounts: accounts, gmail: gmail}
}

func (s *EmailService) gmailPage(ctx context.Context, tenantID, pageID uuid.UUID) (*models.SocialPage, error) {
	page, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}
	if page.Platform != models.PlatformGmail {
		return nil, ErrNotGmailPage
	}
	return page, nil
}

type SendEmailParams struct {
	To      string
	Cc      string
	Bcc     string
	Subject string
	Body    string
}

func (s *EmailService) SendEmail(ctx context.Context, tenantID, pageID uuid.UUID, params SendEmailParams) (string, error) {
	if params.To == "" {
		return "", ErrEmptyContent
	}

	page, err := s.gmailPage(ctx, tenantID, pageID)
	if err != nil {
		return "", err
	}

	id, err := s.gmail.SendMail(ctx, page.AccessToken, platform.Mail{
		To:      params.To,
		Cc:      params.Cc,
		Bcc:     params.Bcc,
		Subject: params.Subject,
		Body:    params.Body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return id, nil
}

type ReplyEmailParams struct {
	ThreadID  string
	MessageID string
	Body      string
}

func (s *EmailService) ReplyToEmail(ctx context.Context, tenantID, pageID uuid.UUID, params ReplyEmailParams) (string, error) {
	if params.MessageID == "" {
		return "", ErrMessageNotFound
	}

	page, err := s.gmailPage(ctx, tenantID, pageID)
	if err != nil {
		return "", err
	}

	id, err := s.gmail.ReplyToMail(ctx, page.AccessToken, params.ThreadID, params.MessageID, params.Body)
	if err != nil {
		return "", fmt.Errorf("failed to reply to email: %w", err)
	}
	return id, nil
}

// GetEmails lists the mailbox inbox straight from Gmail.
func (s *EmailService) GetEmails(ctx context.Context, tenantID, pageID uuid.UUID, opts platform.FetchOptions) ([]platform.Item, error) {
	page, err := s.gmailPage(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	items, err := s.gmail.FetchContent(ctx, page.PageID, page.AccessToken, platform.KindMessage, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emails: %w", err)
	}
	return items, nil
}

func (s *EmailService) GetEmailByID(ctx context.Context, tenantID, pageID uuid.UUID, messageID string) (*platform.Item, error) {
	page, err := s.gmailPage(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	item, err := s.gmail.FetchContentByID(ctx, page.AccessToken, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch email: %w", err)
	}
	return item, nil
}
