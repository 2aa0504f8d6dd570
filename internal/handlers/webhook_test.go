package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
)

func setupWebhookApp() http.Handler {
	handler := NewWebhookHandler("secret-verify-token")

	app := drift.New()
	app.Get("/webhooks/facebook", handler.Verify)
	app.Post("/webhooks/facebook", handler.Receive)
	return app
}

func TestWebhookHandler_Verify_EchoesChallenge(t *testing.T) {
	app := setupWebhookApp()

	params := url.Values{}
	params.Set("hub.mode", "subscribe")
	params.Set("hub.verify_token", "secret-verify-token")
	params.Set("hub.challenge", "challenge-12345")
	req := httptest.NewRequest(http.MethodGet, "/webhooks/facebook?"+params.Encode(), nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "challenge-12345", rec.Body.String())
}

func TestWebhookHandler_Verify_WrongToken(t *testing.T) {
	app := setupWebhookApp()

	params := url.Values{}
	params.Set("hub.mode", "subscribe")
	params.Set("hub.verify_token", "not-the-token")
	params.Set("hub.challenge", "challenge-12345")
	req := httptest.NewRequest(http.MethodGet, "/webhooks/facebook?"+params.Encode(), nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "challenge-12345")
}

func TestWebhookHandler_Receive_Acknowledges(t *testing.T) {
	app := setupWebhookApp()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/facebook",
		strings.NewReader(`{"object":"page","entry":[]}`))
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EVENT_RECEIVED", rec.Body.String())
}
