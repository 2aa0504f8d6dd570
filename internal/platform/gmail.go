package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/socialdesk/socialdesk-api/internal/models"
	"golang.org/x/oauth2"
)

const gmailAPIURL = "https://gmail.googleapis.com/gmail/v1"

// GmailAdapter treats a mailbox as a social page: inbox mail maps to
// canonical message items keyed by Gmail message id, threads act as
// conversations. Posts are not a Gmail concept.
type GmailAdapter struct {
	apiURL  string
	timeout time.Duration
}

func NewGmailAdapter() *GmailAdapter {
	return &GmailAdapter{
		apiURL:  gmailAPIURL,
		timeout: 30 * time.Second,
	}
}

func (a *GmailAdapter) Platform() string {
	return models.PlatformGmail
}

type gmailHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type gmailPayload struct {
	MimeType string `json:"mimeType"`
	Headers  []gmailHeader `json:"headers"`
	Body     struct {
		Data string `json:"data"`
	} `json:"body"`
	Parts []gmailPayload `json:"parts"`
}

type gmailMessage struct {
	ID           string       `json:"id"`
	ThreadID     string       `json:"threadId"`
	Snippet      string       `json:"snippet"`
	InternalDate string       `json:"internalDate"`
	Payload      gmailPayload `json:"payload"`
}

func (a *GmailAdapter) FetchContent(ctx context.Context, accountRef, credential string, kind ContentKind, opts FetchOptions) ([]Item, error) {
	if kind != KindMessage {
		return nil, newError(a.Platform(), "posting is not supported", nil)
	}

	query := "in:inbox"
	if opts.Since != nil {
		query += " after:" + strconv.FormatInt(opts.Since.Unix(), 10)
	}
	if opts.Until != nil {
		// Gmail's before: operator is exclusive; widen by one second so a
		// mail stamped exactly at the bound is still fetched.
		query += " before:" + strconv.FormatInt(opts.Until.Unix()+1, 10)
	}

	params := url.Values{}
	params.Set("maxResults", strconv.Itoa(opts.limit()))
	params.Set("q", query)

	var listResp struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := a.get(ctx, credential, a.apiURL+"/users/me/messages", params, &listResp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(listResp.Messages))
	for _, ref := range listResp.Messages {
		if ref.ID == "" {
			continue
		}
		item, err := a.FetchContentByID(ctx, credential, ref.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (a *GmailAdapter) FetchContentByID(ctx context.Context, credential, externalID string) (*Item, error) {
	params := url.Values{}
	params.Set("format", "full")

	var raw json.RawMessage
	endpoint := fmt.Sprintf("%s/users/me/messages/%s", a.apiURL, externalID)
	if err := a.get(ctx, credential, endpoint, params, &raw); err != nil {
		return nil, err
	}

	var msg gmailMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, newError(a.Platform(), "malformed message payload", err)
	}

	content := msg.Snippet
	if content == "" {
		content = extractBody(msg.Payload)
	}

	var sentAt time.Time
	if millis, err := strconv.ParseInt(msg.InternalDate, 10, 64); err == nil {
		sentAt = time.UnixMilli(millis)
	}

	from := headerValue(msg.Payload.Headers, "From")
	return &Item{
		ExternalID:     msg.ID,
		ConversationID: msg.ThreadID,
		Content:        content,
		SenderID:       from,
		SenderName:     from,
		Timestamp:      sentAt,
		Raw:            raw,
	}, nil
}

func (a *GmailAdapter) CreateContent(ctx context.Context, accountRef, credential string, req CreateRequest) (string, error) {
	if req.Kind != KindMessage {
		return "", newError(a.Platform(), "posting is not supported", nil)
	}
	return a.SendMail(ctx, credential, Mail{
		To:      req.RecipientID,
		Subject: req.Subject,
		Body:    req.Content,
	})
}

// Mail is an outbound email. ThreadID, InReplyTo are set for replies only.
type Mail struct {
	To        string
	Cc        string
	Bcc       string
	Subject   string
	Body      string
	ThreadID  string
	InReplyTo string
}

func (a *GmailAdapter) SendMail(ctx context.Context, credential string, mail Mail) (string, error) {
	lines := []string{"To: " + mail.To}
	if mail.Cc != "" {
		lines = append(lines, "Cc: "+mail.Cc)
	}
	if mail.Bcc != "" {
		lines = append(lines, "Bcc: "+mail.Bcc)
	}
	lines = append(lines, "Subject: "+mail.Subject)
	if mail.InReplyTo != "" {
		lines = append(lines, "In-Reply-To: "+mail.InReplyTo, "References: "+mail.InReplyTo)
	}
	lines = append(lines, "", mail.Body)

	body := map[string]any{
		"raw": base64.RawURLEncoding.EncodeToString([]byte(strings.Join(lines, "\r\n"))),
	}
	if mail.ThreadID != "" {
		body["threadId"] = mail.ThreadID
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := a.post(ctx, credential, a.apiURL+"/users/me/messages/send", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ReplyToMail answers an existing message in its thread, addressing the
// original sender with the original subject.
func (a *GmailAdapter) ReplyToMail(ctx context.Context, credential, threadID, messageID, body string) (string, error) {
	original, err := a.fetchRawMessage(ctx, credential, messageID)
	if err != nil {
		return "", err
	}

	return a.SendMail(ctx, credential, Mail{
		To:        headerValue(original.Payload.Headers, "From"),
		Subject:   "Re: " + headerValue(original.Payload.Headers, "Subject"),
		Body:      body,
		ThreadID:  threadID,
		InReplyTo: messageID,
	})
}

func (a *GmailAdapter) VerifyCredential(ctx context.Context, credential string) (*AccountIdentity, error) {
	var resp struct {
		EmailAddress string `json:"emailAddress"`
	}
	if err := a.get(ctx, credential, a.apiURL+"/users/me/profile", url.Values{}, &resp); err != nil {
		return nil, err
	}

	return &AccountIdentity{ID: resp.EmailAddress, Name: resp.EmailAddress}, nil
}

func (a *GmailAdapter) fetchRawMessage(ctx context.Context, credential, messageID string) (*gmailMessage, error) {
	params := url.Values{}
	params.Set("format", "full")

	var msg gmailMessage
	endpoint := fmt.Sprintf("%s/users/me/messages/%s", a.apiURL, messageID)
	if err := a.get(ctx, credential, endpoint, params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func headerValue(headers []gmailHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func extractBody(payload gmailPayload) string {
	if payload.Body.Data != "" {
		if decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(payload.Body.Data); err == nil {
			return string(decoded)
		}
	}

	for _, mimeType := range []string{"text/plain", "text/html"} {
		for _, part := range payload.Parts {
			if part.MimeType == mimeType && part.Body.Data != "" {
				if decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(part.Body.Data); err == nil {
					return string(decoded)
				}
			}
		}
	}
	return ""
}

func (a *GmailAdapter) httpClient(ctx context.Context, credential string) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential, TokenType: "Bearer"})
	client := oauth2.NewClient(ctx, source)
	client.Timeout = a.timeout
	return client
}

func (a *GmailAdapter) get(ctx context.Context, credential, endpoint string, params url.Values, out any) error {
	target := endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return newError(a.Platform(), "failed to build request", err)
	}
	return a.do(ctx, credential, req, out)
}

func (a *GmailAdapter) post(ctx context.Context, credential, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return newError(a.Platform(), "failed to encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return newError(a.Platform(), "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(ctx, credential, req, out)
}

func (a *GmailAdapter) do(ctx context.Context, credential string, req *http.Request, out any) error {
	resp, err := a.httpClient(ctx, credential).Do(req)
	if err != nil {
		return newError(a.Platform(), "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return newError(a.Platform(), msg, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(a.Platform(), "failed to decode response", err)
	}
	return nil
}
