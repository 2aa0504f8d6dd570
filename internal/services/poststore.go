package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

const postColumns = `id, social_page_id, external_id, platform, content, media_urls,
	likes, comments, shares, metadata, posted_at, created_at, updated_at`

// PostStore persists canonical posts keyed by (social_page_id, external_id).
type PostStore struct {
	db *database.DB
}

func NewPostStore(db *database.DB) *PostStore {
	return &PostStore{db: db}
}

// Upsert reconciles one canonical post. The unique-key conflict path
// overwrites the platform-synchronized fields while keeping the original row
// identity and created_at; the upsert is atomic per row, so concurrent
// refreshes of the same page are safe (last write wins).
func (s *PostStore) Upsert(ctx context.Context, post *models.Post) (*models.Post, error) {
	mediaURLs := post.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}

	var saved models.Post
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO posts (social_page_id, external_id, platform, content, media_urls,
			likes, comments, shares, metadata, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (social_page_id, external_id) DO UPDATE SET
			content = EXCLUDED.content,
			media_urls = EXCLUDED.media_urls,
			likes = EXCLUDED.likes,
			comments = EXCLUDED.comments,
			shares = EXCLUDED.shares,
			metadata = EXCLUDED.metadata,
			posted_at = EXCLUDED.posted_at,
			updated_at = NOW()
		RETURNING `+postColumns+`
	`, post.SocialPageID, post.ExternalID, post.Platform, post.Content, mediaURLs,
		post.Likes, post.Comments, post.Shares, post.Metadata, post.PostedAt).Scan(
		&saved.ID, &saved.SocialPageID, &saved.ExternalID, &saved.Platform, &saved.Content,
		&saved.MediaURLs, &saved.Likes, &saved.Comments, &saved.Shares, &saved.Metadata,
		&saved.PostedAt, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert post: %w", err)
	}
	return &saved, nil
}

func (s *PostStore) FindByExternalID(ctx context.Context, pageID uuid.UUID, externalID string) (*models.Post, error) {
	var post models.Post
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+postColumns+` FROM posts WHERE social_page_id = $1 AND external_id = $2
	`, pageID, externalID).Scan(
		&post.ID, &post.SocialPageID, &post.ExternalID, &post.Platform, &post.Content,
		&post.MediaURLs, &post.Likes, &post.Comments, &post.Shares, &post.Metadata,
		&post.PostedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) GetByID(ctx context.Context, pageID, postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+postColumns+` FROM posts WHERE id = $1 AND social_page_id = $2
	`, postID, pageID).Scan(
		&post.ID, &post.SocialPageID, &post.ExternalID, &post.Platform, &post.Content,
		&post.MediaURLs, &post.Likes, &post.Comments, &post.Shares, &post.Metadata,
		&post.PostedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindWindowed reads a page's posts with inclusive platform-timestamp
// bounds, newest first. This path never touches the network.
func (s *PostStore) FindWindowed(ctx context.Context, pageID uuid.UUID, since, until *time.Time, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 25
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE social_page_id = $1`
	args := []any{pageID}

	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND posted_at >= $%d", len(args))
	}
	if until != nil {
		args = append(args, *until)
		query += fmt.Sprintf(" AND posted_at <= $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY posted_at DESC LIMIT $%d", len(args))

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID, &post.SocialPageID, &post.ExternalID, &post.Platform, &post.Content,
			&post.MediaURLs, &post.Likes, &post.Comments, &post.Shares, &post.Metadata,
			&post.PostedAt, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
