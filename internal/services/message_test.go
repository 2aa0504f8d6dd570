package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMessageService(t *testing.T, adapters ...platform.Adapter) (*MessageService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	registry := platform.NewRegistry(adapters...)
	accounts := NewAccountService(db, registry)
	store := NewMessageStore(db)
	return NewMessageService(accounts, store, registry), mock
}

func TestMessageService_GetMessages_CachedReadSkipsPlatform(t *testing.T) {
	adapter := &fakeAdapter{platformName: models.PlatformFacebook}
	svc, mock := setupMessageService(t, adapter)
	ctx := context.Background()
	page := testPage(models.PlatformFacebook)

	expectPageLookup(mock, page)
	mock.ExpectQuery(`SELECT .+ FROM messages WHERE social_page_id = \$1 ORDER BY sent_at DESC LIMIT \$2`).
		WithArgs(page.ID, 25).
		WillReturnRows(pgxmock.NewRows(messageColumnsList()))

	_, err := svc.GetMessages(ctx, page.TenantID, page.ID, MessageQuery{})

	require.NoError(t, err)
	assert.Zero(t, adapter.fetchCalls, "cached read must not touch the platform")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_SendMessage_RecordsPageAuthoredRead(t *testing.T) {
	adapter := &fakeAdapter{
		platformName: models.PlatformFacebook,
		created:      "msg-out-1",
	}
	svc, mock := setupMessageService(t, adapter)
	ctx := context.Background()
	page := testPage(models.PlatformFacebook)
	now := time.Now()

	expectPageLookup(mock, page)

	rows := pgxmock.NewRows(messageColumnsList()).AddRow(
		uuid.New(), page.ID, "msg-out-1", "recipient-1", models.PlatformFacebook, "hello",
		page.PageID, (*string)(nil), true, true, []string{}, nil, now, now, now,
	)
	mock.ExpectQuery(`INSERT INTO messages .+ ON CONFLICT`).
		WithArgs(page.ID, "msg-out-1", "recipient-1", models.PlatformFacebook, "hello",
			page.PageID, (*string)(nil), true, true, []string{}, nil, pgxmock.AnyArg()).
		WillReturnRows(rows)

	msg, err := svc.SendMessage(ctx, page.TenantID, page.ID, SendMessageParams{
		RecipientID: "recipient-1",
		Content:     "hello",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, adapter.createCalls)
	assert.True(t, msg.IsFromPage)
	assert.True(t, msg.IsRead, "sent messages never count as unread")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_SendMessage_EmptyContent(t *testing.T) {
	adapter := &fakeAdapter{platformName: models.PlatformFacebook}
	svc, mock := setupMessageService(t, adapter)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, uuid.New(), uuid.New(), SendMessageParams{RecipientID: "r-1"})

	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Zero(t, adapter.createCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Marking a conversation read requires the page to belong to the tenant;
// a foreign page fails before any message row is touched.
func TestMessageService_MarkConversationRead_ForeignPage(t *testing.T) {
	adapter := &fakeAdapter{platformName: models.PlatformFacebook}
	svc, mock := setupMessageService(t, adapter)
	ctx := context.Background()
	tenantID := uuid.New()
	pageID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM social_pages WHERE id = \$1 AND tenant_id = \$2`).
		WithArgs(pageID, tenantID).
		WillReturnError(pgx.ErrNoRows)

	err := svc.MarkConversationRead(ctx, tenantID, pageID, "conv-1")

	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_MarkRead(t *testing.T) {
	adapter := &fakeAdapter{platformName: models.PlatformFacebook}
	svc, mock := setupMessageService(t, adapter)
	ctx := context.Background()
	page := testPage(models.PlatformFacebook)
	messageID := uuid.New()

	expectPageLookup(mock, page)
	mock.ExpectExec(`UPDATE messages SET is_read = TRUE`).
		WithArgs(messageID, page.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.MarkRead(ctx, page.TenantID, page.ID, messageID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
