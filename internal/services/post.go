package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
)

var (
	ErrPlatformMismatch     = errors.New("operation not supported on this platform")
	ErrPagePlatformMismatch = errors.New("platform does not match this page")
	ErrMediaRequired        = errors.New("media is required for this platform")
	ErrEmptyContent         = errors.New("content must not be empty")
)

// PostService coordinates posts between the external platforms and the local
// store. Reads are served from the store; refresh=true pulls from the
// platform first and reconciles before reading.
type PostService struct {
	accounts *AccountService
	store    *PostStore
	adapters *platform.Registry
}

func NewPostService(accounts *AccountService, store *PostStore, adapters *platform.Registry) *PostService {
	return &PostService{accounts: accounts, store: store, adapters: adapters}
}

type PostQuery struct {
	Since   *time.Time
	Until   *time.Time
	Limit   int
	Refresh bool
}

// GetPosts returns a page's posts. Without Refresh this never touches the
// network. With Refresh the platform is fetched first and every returned item
// is upserted; individual items that fail to reconcile are logged and
// skipped so one bad item cannot sink the batch.
func (s *PostService) GetPosts(ctx context.Context, tenantID, pageID uuid.UUID, query PostQuery) ([]models.Post, error) {
	page, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	if query.Refresh {
		if err := s.syncPage(ctx, page, query); err != nil {
			return nil, err
		}
	}

	return s.store.FindWindowed(ctx, pageID, query.Since, query.Until, query.Limit)
}

// syncPage fetches the platform's posts for one page and reconciles them
// into the store.
func (s *PostService) syncPage(ctx context.Context, page *models.SocialPage, query PostQuery) error {
	adapter, err := s.adapters.ForPlatform(page.Platform)
	if err != nil {
		return ErrInvalidPlatform
	}

	items, err := adapter.FetchContent(ctx, page.PageID, page.AccessToken, platform.KindPost, platform.FetchOptions{
		Since: query.Since,
		Until: query.Until,
		Limit: query.Limit,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch posts from %s: %w", page.Platform, err)
	}

	for _, item := range items {
		if _, err := s.store.Upsert(ctx, itemToPost(page, item)); err != nil {
			log.Printf("Failed to reconcile post %s on page %s: %v", item.ExternalID, page.ID, err)
		}
	}
	return nil
}

// GetPostByID reads one post, optionally refreshing it from the platform
// first. A failed refresh falls back to the cached copy instead of erroring.
func (s *PostService) GetPostByID(ctx context.Context, tenantID, pageID, postID uuid.UUID, refresh bool) (*models.Post, error) {
	page, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	post, err := s.store.GetByID(ctx, pageID, postID)
	if err != nil {
		return nil, err
	}

	if !refresh {
		return post, nil
	}

	adapter, err := s.adapters.ForPlatform(page.Platform)
	if err != nil {
		return post, nil
	}

	item, err := adapter.FetchContentByID(ctx, page.AccessToken, post.ExternalID)
	if err != nil {
		log.Printf("Failed to refresh post %s from %s, serving cached copy: %v", post.ExternalID, page.Platform, err)
		return post, nil
	}

	return s.store.Upsert(ctx, itemToPost(page, *item))
}

type CreatePostParams struct {
	Platform  string
	Content   string
	MediaURLs []string
}

// CreatePost publishes through the platform and records the canonical post
// locally. Gmail pages cannot post; Instagram requires at least one media
// URL. A request that names a platform must name the page's own platform.
func (s *PostService) CreatePost(ctx context.Context, tenantID, pageID uuid.UUID, params CreatePostParams) (*models.Post, error) {
	page, err := s.accounts.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	if params.Platform != "" && params.Platform != page.Platform {
		return nil, ErrPagePlatformMismatch
	}

	switch page.Platform {
	case models.PlatformGmail:
		return nil, ErrPlatformMismatch
	case models.PlatformInstagram:
		if len(params.MediaURLs) == 0 {
			return nil, ErrMediaRequired
		}
	}
	if params.Content == "" && len(params.MediaURLs) == 0 {
		return nil, ErrEmptyContent
	}

	adapter, err := s.adapters.ForPlatform(page.Platform)
	if err != nil {
		return nil, ErrInvalidPlatform
	}

	externalID, err := adapter.CreateContent(ctx, page.PageID, page.AccessToken, platform.CreateRequest{
		Kind:      platform.KindPost,
		Content:   params.Content,
		MediaURLs: params.MediaURLs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish post on %s: %w", page.Platform, err)
	}

	return s.store.Upsert(ctx, &models.Post{
		SocialPageID: page.ID,
		ExternalID:   externalID,
		Platform:     page.Platform,
		Content:      params.Content,
		MediaURLs:    params.MediaURLs,
		PostedAt:     time.Now().UTC(),
	})
}

// PageSyncError reports a page whose refresh failed during a tenant-wide
// aggregation. Pages that fail are reported alongside the results of the
// pages that succeeded.
type PageSyncError struct {
	PageID   uuid.UUID `json:"page_id"`
	PageName string    `json:"page_name"`
	Error    string    `json:"error"`
}

// GetAllPosts aggregates posts across every page of the tenant (optionally
// one platform). A failing page is isolated: its error is collected and the
// remaining pages still contribute their results.
func (s *PostService) GetAllPosts(ctx context.Context, tenantID uuid.UUID, platformName string, query PostQuery) ([]models.Post, []PageSyncError, error) {
	pages, err := s.accounts.GetPagesByPlatform(ctx, tenantID, platformName)
	if err != nil {
		return nil, nil, err
	}

	var posts []models.Post
	var failures []PageSyncError
	for i := range pages {
		page := &pages[i]
		if query.Refresh {
			if err := s.syncPage(ctx, page, query); err != nil {
				log.Printf("Failed to sync page %s (%s): %v", page.ID, page.Platform, err)
				failures = append(failures, PageSyncError{PageID: page.ID, PageName: page.Name, Error: err.Error()})
				continue
			}
		}

		pagePosts, err := s.store.FindWindowed(ctx, page.ID, query.Since, query.Until, query.Limit)
		if err != nil {
			failures = append(failures, PageSyncError{PageID: page.ID, PageName: page.Name, Error: err.Error()})
			continue
		}
		posts = append(posts, pagePosts...)
	}
	return posts, failures, nil
}

func itemToPost(page *models.SocialPage, item platform.Item) *models.Post {
	return &models.Post{
		SocialPageID: page.ID,
		ExternalID:   item.ExternalID,
		Platform:     page.Platform,
		Content:      item.Content,
		MediaURLs:    item.MediaURLs,
		Likes:        item.Likes,
		Comments:     item.Comments,
		Shares:       item.Shares,
		Metadata:     item.Raw,
		PostedAt:     item.Timestamp,
	}
}
