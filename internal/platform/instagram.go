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

const instagramAPIURL = "https://graph.instagram.com"

const instagramMediaFields = "id,caption,media_type,media_url,permalink,timestamp,like_count,comments_count,children{media_url,media_type}"

type InstagramAdapter struct {
	apiURL string
	client *http.Client
}

func NewInstagramAdapter() *InstagramAdapter {
	return &InstagramAdapter{
		apiURL: instagramAPIURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *InstagramAdapter) Platform() string {
	return models.PlatformInstagram
}

type instagramMedia struct {
	ID            string `json:"id"`
	Caption       string `json:"caption"`
	MediaType     string `json:"media_type"`
	MediaURL      string `json:"media_url"`
	Permalink     string `json:"permalink"`
	Timestamp     string `json:"timestamp"`
	LikeCount     int    `json:"like_count"`
	CommentsCount int    `json:"comments_count"`
	Children      *struct {
		Data []struct {
			MediaURL  string `json:"media_url"`
			MediaType string `json:"media_type"`
		} `json:"data"`
	} `json:"children"`
}

func (a *InstagramAdapter) FetchContent(ctx context.Context, accountRef, credential string, kind ContentKind, opts FetchOptions) ([]Item, error) {
	if kind != KindPost {
		return nil, newError(a.Platform(), "messaging is not supported", nil)
	}

	params := url.Values{}
	params.Set("access_token", credential)
	params.Set("fields", instagramMediaFields)
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
	if err := a.get(ctx, fmt.Sprintf("%s/%s/media", a.apiURL, accountRef), params, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var media instagramMedia
		if err := json.Unmarshal(raw, &media); err != nil {
			return nil, newError(a.Platform(), "malformed media payload", err)
		}
		items = append(items, mediaToItem(media, raw))
	}
	return items, nil
}

func (a *InstagramAdapter) FetchContentByID(ctx context.Context, credential, externalID string) (*Item, error) {
	params := url.Values{}
	params.Set("access_token", credential)
	params.Set("fields", instagramMediaFields)

	var raw json.RawMessage
	if err := a.get(ctx, fmt.Sprintf("%s/%s", a.apiURL, externalID), params, &raw); err != nil {
		return nil, err
	}

	var media instagramMedia
	if err := json.Unmarshal(raw, &media); err != nil {
		return nil, newError(a.Platform(), "malformed media payload", err)
	}
	item := mediaToItem(media, raw)
	return &item, nil
}

// CreateContent publishes in two steps: create a media container, then
// publish it. Instagram posts always require an image.
func (a *InstagramAdapter) CreateContent(ctx context.Context, accountRef, credential string, req CreateRequest) (string, error) {
	if req.Kind != KindPost {
		return "", newError(a.Platform(), "messaging is not supported", nil)
	}
	if len(req.MediaURLs) == 0 {
		return "", newError(a.Platform(), "an image url is required", nil)
	}

	containerBody := map[string]any{
		"image_url":    req.MediaURLs[0],
		"caption":      req.Content,
		"access_token": credential,
	}
	var containerResp struct {
		ID string `json:"id"`
	}
	if err := a.post(ctx, fmt.Sprintf("%s/%s/media", a.apiURL, accountRef), containerBody, &containerResp); err != nil {
		return "", err
	}

	publishBody := map[string]any{
		"creation_id":  containerResp.ID,
		"access_token": credential,
	}
	var publishResp struct {
		ID string `json:"id"`
	}
	if err := a.post(ctx, fmt.Sprintf("%s/%s/media_publish", a.apiURL, accountRef), publishBody, &publishResp); err != nil {
		return "", err
	}
	return publishResp.ID, nil
}

func (a *InstagramAdapter) VerifyCredential(ctx context.Context, credential string) (*AccountIdentity, error) {
	params := url.Values{}
	params.Set("access_token", credential)
	params.Set("fields", "id,username,account_type")

	var resp struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := a.get(ctx, fmt.Sprintf("%s/me", a.apiURL), params, &resp); err != nil {
		return nil, err
	}

	return &AccountIdentity{ID: resp.ID, Name: resp.Username}, nil
}

func mediaToItem(media instagramMedia, raw json.RawMessage) Item {
	// media_url can be absent, e.g. copyright-flagged videos or expired media.
	var mediaURLs []string
	if media.MediaURL != "" {
		mediaURLs = append(mediaURLs, media.MediaURL)
	}
	if media.Children != nil {
		for _, child := range media.Children.Data {
			if child.MediaURL != "" {
				mediaURLs = append(mediaURLs, child.MediaURL)
			}
		}
	}
	postedAt, _ := time.Parse(time.RFC3339, media.Timestamp)

	return Item{
		ExternalID: media.ID,
		Content:    media.Caption,
		MediaURLs:  mediaURLs,
		Likes:      media.LikeCount,
		Comments:   media.CommentsCount,
		Timestamp:  postedAt,
		Raw:        raw,
	}
}

func (a *InstagramAdapter) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return newError(a.Platform(), "failed to build request", err)
	}
	return a.do(req, out)
}

func (a *InstagramAdapter) post(ctx context.Context, endpoint string, body any, out any) error {
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

func (a *InstagramAdapter) do(req *http.Request, out any) error {
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
