package dto

import "github.com/google/uuid"

type SendEmailRequest struct {
	SocialPageID uuid.UUID `json:"social_page_id"`
	To           string    `json:"to"`
	Cc           string    `json:"cc,omitempty"`
	Bcc          string    `json:"bcc,omitempty"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
}

type ReplyEmailRequest struct {
	SocialPageID uuid.UUID `json:"social_page_id"`
	ThreadID     string    `json:"thread_id"`
	MessageID    string    `json:"message_id"`
	Body         string    `json:"body"`
}

type EmailSentResponse struct {
	ID string `json:"id"`
}
