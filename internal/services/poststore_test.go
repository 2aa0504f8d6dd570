package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostStore(t *testing.T) (*PostStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewPostStore(db), mock
}

func postRows(post *models.Post) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "social_page_id", "external_id", "platform", "content", "media_urls",
		"likes", "comments", "shares", "metadata", "posted_at", "created_at", "updated_at",
	}).AddRow(
		post.ID, post.SocialPageID, post.ExternalID, post.Platform, post.Content, post.MediaURLs,
		post.Likes, post.Comments, post.Shares, post.Metadata, post.PostedAt, post.CreatedAt, post.UpdatedAt,
	)
}

func TestPostStore_Upsert(t *testing.T) {
	store, mock := setupPostStore(t)
	ctx := context.Background()
	pageID := uuid.New()
	now := time.Now()

	saved := &models.Post{
		ID:           uuid.New(),
		SocialPageID: pageID,
		ExternalID:   "fb-post-1",
		Platform:     models.PlatformFacebook,
		Content:      "hello",
		MediaURLs:    []string{},
		Likes:        3,
		Metadata:     json.RawMessage(`{"id":"fb-post-1"}`),
		PostedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`INSERT INTO posts .+ ON CONFLICT \(social_page_id, external_id\) DO UPDATE`).
		WithArgs(pageID, "fb-post-1", models.PlatformFacebook, "hello", []string{},
			3, 0, 0, json.RawMessage(`{"id":"fb-post-1"}`), now).
		WillReturnRows(postRows(saved))

	post, err := store.Upsert(ctx, &models.Post{
		SocialPageID: pageID,
		ExternalID:   "fb-post-1",
		Platform:     models.PlatformFacebook,
		Content:      "hello",
		Likes:        3,
		Metadata:     json.RawMessage(`{"id":"fb-post-1"}`),
		PostedAt:     now,
	})

	require.NoError(t, err)
	assert.Equal(t, saved.ID, post.ID)
	assert.Equal(t, "fb-post-1", post.ExternalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStore_GetByID_NotFound(t *testing.T) {
	store, mock := setupPostStore(t)
	ctx := context.Background()
	pageID := uuid.New()
	postID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM posts WHERE id`).
		WithArgs(postID, pageID).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.GetByID(ctx, pageID, postID)

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStore_FindWindowed_NoBounds(t *testing.T) {
	store, mock := setupPostStore(t)
	ctx := context.Background()
	pageID := uuid.New()
	now := time.Now()

	post := &models.Post{
		ID:           uuid.New(),
		SocialPageID: pageID,
		ExternalID:   "fb-post-1",
		Platform:     models.PlatformFacebook,
		MediaURLs:    []string{},
		PostedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`SELECT .+ FROM posts WHERE social_page_id = \$1 ORDER BY posted_at DESC LIMIT \$2`).
		WithArgs(pageID, 25).
		WillReturnRows(postRows(post))

	posts, err := store.FindWindowed(ctx, pageID, nil, nil, 0)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStore_FindWindowed_WithBounds(t *testing.T) {
	store, mock := setupPostStore(t)
	ctx := context.Background()
	pageID := uuid.New()
	since := time.Now().Add(-24 * time.Hour)
	until := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM posts WHERE social_page_id = \$1 AND posted_at >= \$2 AND posted_at <= \$3 ORDER BY posted_at DESC LIMIT \$4`).
		WithArgs(pageID, since, until, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "social_page_id", "external_id", "platform", "content", "media_urls",
			"likes", "comments", "shares", "metadata", "posted_at", "created_at", "updated_at",
		}))

	posts, err := store.FindWindowed(ctx, pageID, &since, &until, 10)

	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
