package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/middleware"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/socialdesk/socialdesk-api/pkg/dto"
)

type MessagesHandler struct {
	messageService MessageServiceInterface
	accessService  AccessServiceInterface
}

func NewMessagesHandler(messageService MessageServiceInterface, accessService AccessServiceInterface) *MessagesHandler {
	return &MessagesHandler{
		messageService: messageService,
		accessService:  accessService,
	}
}

func (h *MessagesHandler) List(c *drift.Context) {
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

	messages, err := h.messageService.GetMessages(context.Background(), tenantID, pageID, services.MessageQuery{
		ConversationID: c.QueryParam("conversation_id"),
		Since:          since,
		Until:          until,
		Limit:          limitQuery(c),
		Refresh:        refreshQuery(c),
	})
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.NotFound("page not found")
			return
		}
		platformError(c, err, "failed to get messages")
		return
	}

	_ = c.JSON(200, messages)
}

func (h *MessagesHandler) Conversations(c *drift.Context) {
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

	conversations, err := h.messageService.GetConversations(context.Background(), tenantID, pageID, refreshQuery(c))
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.NotFound("page not found")
			return
		}
		platformError(c, err, "failed to get conversations")
		return
	}

	_ = c.JSON(200, conversations)
}

// Send delivers a message through the page named in the body.
func (h *MessagesHandler) Send(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.SocialPageID == uuid.Nil {
		c.BadRequest("social_page_id is required")
		return
	}
	if req.RecipientID == "" {
		c.BadRequest("recipient_id is required")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), req.SocialPageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	message, err := h.messageService.SendMessage(context.Background(), tenantID, req.SocialPageID, services.SendMessageParams{
		RecipientID: req.RecipientID,
		Content:     req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPageNotFound):
			c.NotFound("page not found")
		case errors.Is(err, services.ErrEmptyContent):
			c.BadRequest("content must not be empty")
		default:
			platformError(c, err, "failed to send message")
		}
		return
	}

	_ = c.JSON(201, message)
}

func (h *MessagesHandler) MarkRead(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		c.BadRequest("invalid message id")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), pageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	if err := h.messageService.MarkRead(context.Background(), tenantID, pageID, messageID); err != nil {
		if errors.Is(err, services.ErrPageNotFound) || errors.Is(err, services.ErrMessageNotFound) {
			c.NotFound("message not found")
			return
		}
		c.InternalServerError("failed to mark message as read")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "message marked as read"})
}

func (h *MessagesHandler) MarkConversationRead(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	conversationID := c.Param("conversationId")
	if conversationID == "" {
		c.BadRequest("invalid conversation id")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), pageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	if err := h.messageService.MarkConversationRead(context.Background(), tenantID, pageID, conversationID); err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.NotFound("page not found")
			return
		}
		c.InternalServerError("failed to mark conversation as read")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "conversation marked as read"})
}
