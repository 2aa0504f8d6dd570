package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/socialdesk/socialdesk-api/internal/models"
)

const facebookAPIURL = "https://graph.facebook.com/v18.0"

const facebookPostFields = "id,message,story,created_time,full_picture,attachments,likes.summary(true),comments.summary(true),shares"

type FacebookAdapter struct {
	apiURL string
	client *http.Client
}

func NewFacebookAdapter() *FacebookAdapter {
	return &FacebookAdapter{
		apiURL: facebookAPIURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *FacebookAdapter) Platform() string {
	return models.PlatformFacebook
}

type facebookPost struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Story       string `json:"story"`
	CreatedTime string `json:"created_time"`
	FullPicture string `json:"full_picture"`
	Likes       *struct {
		Summary struct {
			TotalCount int `json:"total_count"`
		} `json:"summary"`
	} `json:"likes"`
	Comments *struct {
		Summary struct {
			TotalCount int `json:"total_count"`
		} `json:"summary"`
	} `json:"comments"`
	Shares *struct {
		Count int `json:"count"`
	} `json:"shares"`
}

type facebookMessage struct {
	ID          string `json:"id"`
	CreatedTime string `json:"created_time"`
	From        struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"from"`
	Message string `json:"message"`
}

type facebookConversation struct {
	ID          string `json:"id"`
	UpdatedTime string `json:"updated_time"`
}

func (a *FacebookAdapter) FetchContent(ctx context.Context, accountRef, credential string, kind ContentKind, opts FetchOptions) ([]Item, error) {
	switch kind {
	case KindPost:
		return a.fetchPosts(ctx, accountRef, credential, opts)
	case KindMessage:
		return a.fetchMessages(ctx, accountRef, credential, opts)
	}
	return nil, newError(a.Platform(), fmt.Sprintf("unsupported content kind %q", kind), nil)
}

func (a *FacebookAdapter) fetchPosts(ctx context.Context, pageID, accessToken string, opts FetchOptions) ([]Item, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("fields", facebookPostFields)
	params.Set("limit", strconv.Itoa(opts.limit()))
	if opts.Since != nil {
		params.Set("since", strconv.FormatInt(opts.Since.Unix(), 10))
	}
	if opts.Until != nil {
		params.Set("until", strconv.FormatInt(opts.Until.Unix(), 10))
	}

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := a.get(ctx, fmt.Sprintf("%s/%s/posts", a.apiURL, pageID), params, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var post facebookPost
		if err := json.Unmarshal(raw, &post); err != nil {
			return nil, newError(a.Platform(), "malformed post payload", err)
		}
		items = append(items, a.postToItem(post, raw))
	}
	return items, nil
}

// fetchMessages walks the page's conversations and flattens their messages,
// tagging each item with its conversation id.
func (a *FacebookAdapter) fetchMessages(ctx context.Context, pageID, accessToken string, opts FetchOptions) ([]Item, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("fields", "id,updated_time,participants,unread_count,message_count")
	params.Set("limit", strconv.Itoa(opts.limit()))

	var convResp struct {
		Data []facebookConversation `json:"data"`
	}
	if err := a.get(ctx, fmt.Sprintf("%s/%s/conversations", a.apiURL, pageID), params, &convResp); err != nil {
		return nil, err
	}

	var items []Item
	for _, conv := range convResp.Data {
		msgParams := url.Values{}
		msgParams.Set("access_token", accessToken)
		msgParams.Set("fields", "id,created_time,from,to,message,attachments")
		msgParams.Set("limit", strconv.Itoa(opts.limit()))

		var msgResp struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := a.get(ctx, fmt.Sprintf("%s/%s/messages", a.apiURL, conv.ID), msgParams, &msgResp); err != nil {
			return nil, err
		}

		for _, raw := range msgResp.Data {
			var msg facebookMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				return nil, newError(a.Platform(), "malformed message payload", err)
			}
			sentAt, _ := time.Parse(time.RFC3339, msg.CreatedTime)
			items = append(items, Item{
				ExternalID:     msg.ID,
				ConversationID: conv.ID,
				Content:        msg.Message,
				SenderID:       msg.From.ID,
				SenderName:     msg.From.Name,
				Timestamp:      sentAt,
				Raw:            raw,
			})
		}
	}
	return items, nil
}

func (a *FacebookAdapter) FetchContentByID(ctx context.Context, credential, externalID string) (*Item, error) {
	params := url.Values{}
	params.Set("access_token", credential)
	params.Set("fields", facebookPostFields)

	var raw json.RawMessage
	if err := a.get(ctx, fmt.Sprintf("%s/%s", a.apiURL, externalID), params, &raw); err != nil {
		return nil, err
	}

	var post facebookPost
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, newError(a.Platform(), "malformed post payload", err)
	}
	item := a.postToItem(post, raw)
	return &item, nil
}

func (a *FacebookAdapter) CreateContent(ctx context.Context, accountRef, credential string, req CreateRequest) (string, error) {
	switch req.Kind {
	case KindPost:
		body := map[string]any{
			"message":      req.Content,
			"access_token": credential,
		}
		if len(req.MediaURLs) > 0 {
			body["link"] = req.MediaURLs[0]
		}
		var resp struct {
			ID string `json:"id"`
		}
		if err := a.post(ctx, fmt.Sprintf("%s/%s/feed", a.apiURL, accountRef), body, &resp); err != nil {
			return "", err
		}
		return resp.ID, nil

	case KindMessage:
		body := map[string]any{
			"recipient":    map[string]string{"id": req.RecipientID},
			"message":      map[string]string{"text": req.Content},
			"access_token": credential,
		}
		var resp struct {
			MessageID   string `json:"message_id"`
			RecipientID string `json:"recipient_id"`
		}
		if err := a.post(ctx, fmt.Sprintf("%s/%s/messages", a.apiURL, accountRef), body, &resp); err != nil {
			return "", err
		}
		return resp.MessageID, nil
	}
	return "", newError(a.Platform(), fmt.Sprintf("unsupported content kind %q", req.Kind), nil)
}

func (a *FacebookAdapter) VerifyCredential(ctx context.Context, credential string) (*AccountIdentity, error) {
	params := url.Values{}
	params.Set("access_token", credential)
	params.Set("fields", "id,name,picture")

	var resp struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := a.get(ctx, fmt.Sprintf("%s/me", a.apiURL), params, &resp); err != nil {
		return nil, err
	}

	return &AccountIdentity{
		ID:             resp.ID,
		Name:           resp.Name,
		ProfilePicture: resp.Picture.Data.URL,
	}, nil
}

func (a *FacebookAdapter) postToItem(post facebookPost, raw json.RawMessage) Item {
	content := post.Message
	if content == "" {
		content = post.Story
	}
	var mediaURLs []string
	if post.FullPicture != "" {
		mediaURLs = []string{post.FullPicture}
	}
	postedAt, _ := time.Parse(time.RFC3339, post.CreatedTime)

	item := Item{
		ExternalID: post.ID,
		Content:    content,
		MediaURLs:  mediaURLs,
		Timestamp:  postedAt,
		Raw:        raw,
	}
	if post.Likes != nil {
		item.Likes = post.Likes.Summary.TotalCount
	}
	if post.Comments != nil {
		item.Comments = post.Comments.Summary.TotalCount
	}
	if post.Shares != nil {
		item.Shares = post.Shares.Count
	}
	return item
}

func (a *FacebookAdapter) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return newError(a.Platform(), "failed to build request", err)
	}
	return a.do(req, out)
}

func (a *FacebookAdapter) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return newError(a.Platform(), "failed to encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return newError(a.Platform(), "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

func (a *FacebookAdapter) do(req *http.Request, out any) error {
	resp, err := a.client.Do(req)
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
