package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGmailAdapter(server *httptest.Server) *GmailAdapter {
	a := NewGmailAdapter()
	a.apiURL = server.URL
	return a
}

func encodeGmailBody(s string) string {
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(s))
}

func TestGmailAdapter_FetchInbox(t *testing.T) {
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/users/me/messages":
			assert.Equal(t, "in:inbox after:1714521600", r.URL.Query().Get("q"))
			assert.Equal(t, "25", r.URL.Query().Get("maxResults"))
			_, _ = w.Write([]byte(`{"messages":[{"id":"mail-1"}]}`))
		case "/users/me/messages/mail-1":
			assert.Equal(t, "full", r.URL.Query().Get("format"))
			_, _ = w.Write([]byte(`{
				"id":"mail-1",
				"threadId":"thread-1",
				"snippet":"quick question about pricing",
				"internalDate":"1714557600000",
				"payload":{"headers":[{"name":"From","value":"jane@example.com"}]}
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := newTestGmailAdapter(server)
	items, err := adapter.FetchContent(context.Background(), "me", "token", KindMessage, FetchOptions{Since: &since})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mail-1", items[0].ExternalID)
	assert.Equal(t, "thread-1", items[0].ConversationID)
	assert.Equal(t, "quick question about pricing", items[0].Content)
	assert.Equal(t, "jane@example.com", items[0].SenderID)
	assert.Equal(t, time.UnixMilli(1714557600000).Unix(), items[0].Timestamp.Unix())
}

func TestGmailAdapter_FetchPosts_Unsupported(t *testing.T) {
	adapter := NewGmailAdapter()

	_, err := adapter.FetchContent(context.Background(), "me", "token", KindPost, FetchOptions{})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "posting is not supported")
}

func TestGmailAdapter_FetchContentByID_BodyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"id":           "mail-2",
			"threadId":     "thread-2",
			"internalDate": "1714557600000",
			"payload": map[string]any{
				"mimeType": "multipart/alternative",
				"headers":  []map[string]string{{"name": "From", "value": "jane@example.com"}},
				"parts": []map[string]any{
					{"mimeType": "text/plain", "body": map[string]string{"data": encodeGmailBody("plain text body")}},
					{"mimeType": "text/html", "body": map[string]string{"data": encodeGmailBody("<p>html body</p>")}},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	adapter := newTestGmailAdapter(server)
	item, err := adapter.FetchContentByID(context.Background(), "token", "mail-2")

	require.NoError(t, err)
	assert.Equal(t, "plain text body", item.Content, "text/plain part wins over text/html")
}

func TestGmailAdapter_SendMail(t *testing.T) {
	var sent struct {
		Raw      string `json:"raw"`
		ThreadID string `json:"threadId"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/messages/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		_, _ = w.Write([]byte(`{"id":"sent-1"}`))
	}))
	defer server.Close()

	adapter := newTestGmailAdapter(server)
	id, err := adapter.SendMail(context.Background(), "token", Mail{
		To:      "jane@example.com",
		Cc:      "team@example.com",
		Subject: "Quote",
		Body:    "Attached below.",
	})

	require.NoError(t, err)
	assert.Equal(t, "sent-1", id)
	assert.Empty(t, sent.ThreadID)

	decoded, err := base64.RawURLEncoding.DecodeString(sent.Raw)
	require.NoError(t, err)
	raw := string(decoded)
	assert.Contains(t, raw, "To: jane@example.com\r\n")
	assert.Contains(t, raw, "Cc: team@example.com\r\n")
	assert.Contains(t, raw, "Subject: Quote\r\n")
	assert.Contains(t, raw, "\r\n\r\nAttached below.")
}

// A reply addresses the original sender, keeps the subject and threads the
// message via In-Reply-To.
func TestGmailAdapter_ReplyToMail(t *testing.T) {
	var sent struct {
		Raw      string `json:"raw"`
		ThreadID string `json:"threadId"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me/messages/mail-1":
			_, _ = w.Write([]byte(`{
				"id":"mail-1",
				"threadId":"thread-1",
				"payload":{"headers":[
					{"name":"From","value":"jane@example.com"},
					{"name":"Subject","value":"Quote"}
				]}
			}`))
		case "/users/me/messages/send":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			_, _ = w.Write([]byte(`{"id":"sent-2"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := newTestGmailAdapter(server)
	id, err := adapter.ReplyToMail(context.Background(), "token", "thread-1", "mail-1", "Sounds good.")

	require.NoError(t, err)
	assert.Equal(t, "sent-2", id)
	assert.Equal(t, "thread-1", sent.ThreadID)

	decoded, err := base64.RawURLEncoding.DecodeString(sent.Raw)
	require.NoError(t, err)
	raw := string(decoded)
	assert.Contains(t, raw, "To: jane@example.com\r\n")
	assert.Contains(t, raw, "Subject: Re: Quote\r\n")
	assert.Contains(t, raw, "In-Reply-To: mail-1\r\n")
	assert.Contains(t, raw, "References: mail-1\r\n")
}

func TestGmailAdapter_VerifyCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/profile", r.URL.Path)
		_, _ = w.Write([]byte(`{"emailAddress":"support@example.com"}`))
	}))
	defer server.Close()

	adapter := newTestGmailAdapter(server)
	identity, err := adapter.VerifyCredential(context.Background(), "token")

	require.NoError(t, err)
	assert.Equal(t, "support@example.com", identity.ID)
	assert.Equal(t, "support@example.com", identity.Name)
}

func TestGmailAdapter_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Credentials","code":401}}`))
	}))
	defer server.Close()

	adapter := newTestGmailAdapter(server)
	_, err := adapter.VerifyCredential(context.Background(), "expired")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "gmail", perr.Platform)
	assert.Contains(t, perr.Message, "Invalid Credentials")
}

// Gmail's before: operator is exclusive, so the upper bound is widened by a
// second to keep the fetch window inclusive.
func TestGmailAdapter_FetchInbox_InclusiveUpperBound(t *testing.T) {
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/messages", r.URL.Path)
		assert.Equal(t, "in:inbox after:1714521600 before:1714608001", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"messages":[]}`))
	}))
	defer server.Close()

	adapter := newTestGmailAdapter(server)
	items, err := adapter.FetchContent(context.Background(), "me", "token", KindMessage, FetchOptions{
		Since: &since,
		Until: &until,
	})

	require.NoError(t, err)
	assert.Empty(t, items)
}
