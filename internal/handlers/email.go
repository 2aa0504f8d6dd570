package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/middleware"
	"github.com/socialdesk/socialdesk-api/internal/platform"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/socialdesk/socialdesk-api/pkg/dto"
)

// EmailHandler serves the Gmail-specific surface: free-form send, threaded
// replies, and live inbox reads.
type EmailHandler struct {
	emailService  EmailServiceInterface
	accessService AccessServiceInterface
}

func NewEmailHandler(emailService EmailServiceInterface, accessService AccessServiceInterface) *EmailHandler {
	return &EmailHandler{
		emailService:  emailService,
		accessService: accessService,
	}
}

// Send delivers a mail through the gmail page named in the body.
func (h *EmailHandler) Send(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var req dto.SendEmailRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.SocialPageID == uuid.Nil {
		c.BadRequest("social_page_id is required")
		return
	}
	if req.To == "" {
		c.BadRequest("to is required")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), req.SocialPageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	id, err := h.emailService.SendEmail(context.Background(), tenantID, req.SocialPageID, services.SendEmailParams{
		To:      req.To,
		Cc:      req.Cc,
		Bcc:     req.Bcc,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		h.emailError(c, err, "failed to send email")
		return
	}

	_ = c.JSON(201, dto.EmailSentResponse{ID: id})
}

func (h *EmailHandler) Reply(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var req dto.ReplyEmailRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.SocialPageID == uuid.Nil {
		c.BadRequest("social_page_id is required")
		return
	}
	if req.MessageID == "" {
		c.BadRequest("message_id is required")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), req.SocialPageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	id, err := h.emailService.ReplyToEmail(context.Background(), tenantID, req.SocialPageID, services.ReplyEmailParams{
		ThreadID:  req.ThreadID,
		MessageID: req.MessageID,
		Body:      req.Body,
	})
	if err != nil {
		h.emailError(c, err, "failed to reply to email")
		return
	}

	_ = c.JSON(201, dto.EmailSentResponse{ID: id})
}

func (h *EmailHandler) List(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), pageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	since, ok := timeQuery(c, "since")
	if !ok {
		return
	}
	until, ok := timeQuery(c, "until")
	if !ok {
		return
	}

	emails, err := h.emailService.GetEmails(context.Background(), tenantID, pageID, platform.FetchOptions{
		Since: since,
		Until: until,
		Limit: limitQuery(c),
	})
	if err != nil {
		h.emailError(c, err, "failed to fetch emails")
		return
	}

	_ = c.JSON(200, emails)
}

func (h *EmailHandler) Get(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	messageID := c.Param("messageId")
	if messageID == "" {
		c.BadRequest("invalid message id")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), pageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	email, err := h.emailService.GetEmailByID(context.Background(), tenantID, pageID, messageID)
	if err != nil {
		h.emailError(c, err, "failed to fetch email")
		return
	}

	_ = c.JSON(200, email)
}

func (h *EmailHandler) emailError(c *drift.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPageNotFound):
		c.NotFound("page not found")
	case errors.Is(err, services.ErrNotGmailPage):
		c.BadRequest("page is not a gmail account")
	case errors.Is(err, services.ErrEmptyContent):
		c.BadRequest("to is required")
	case errors.Is(err, services.ErrMessageNotFound):
		c.BadRequest("message_id is required")
	default:
		platformError(c, err, fallback)
	}
}
