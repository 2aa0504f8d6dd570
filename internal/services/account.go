package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
)

var (
	ErrPageNotFound         = errors.New("social page not found")
	ErrPageLimitReached     = errors.New("maximum number of social pages reached")
	ErrPageAlreadyConnected = errors.New("this page is already connected")
	ErrInvalidPlatform      = errors.New("invalid platform")
)

const pageColumns = `id, tenant_id, name, platform, page_id, access_token, refresh_token,
	token_expires_at, status, profile_picture, metadata, created_at, updated_at`

// AccountService owns SocialPage records: connecting external accounts,
// resolving page → tenant → credentials, and page lifecycle.
type AccountService struct {
	db       *database.DB
	adapters *platform.Registry
}

func NewAccountService(db *database.DB, adapters *platform.Registry) *AccountService {
	return &AccountService{db: db, adapters: adapters}
}

type ConnectPageParams struct {
	Platform     string
	AccessToken  string
	RefreshToken *string
}

// ConnectPage verifies the credential against the live platform, fills in
// the external identity, and creates the page. The tenant's page cap is
// checked first; the (tenant, platform, page_id) unique constraint catches
// duplicate connections.
func (s *AccountService) ConnectPage(ctx context.Context, tenantID uuid.UUID, params ConnectPageParams) (*models.SocialPage, error) {
	if !models.ValidPlatform(params.Platform) {
		return nil, ErrInvalidPlatform
	}

	var maxPages, currentPages int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT t.max_social_pages, (SELECT COUNT(*) FROM social_pages WHERE tenant_id = t.id)
		FROM tenants t WHERE t.id = $1
	`, tenantID).Scan(&maxPages, &currentPages)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if currentPages >= maxPages {
		return nil, ErrPageLimitReached
	}

	adapter, err := s.adapters.ForPlatform(params.Platform)
	if err != nil {
		return nil, ErrInvalidPlatform
	}

	identity, err := adapter.VerifyCredential(ctx, params.AccessToken)
	if err != nil {
		return nil, err
	}

	var profilePicture *string
	if identity.ProfilePicture != "" {
		profilePicture = &identity.ProfilePicture
	}

	var page models.SocialPage
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO social_pages (tenant_id, name, platform, page_id, access_token, refresh_token, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+pageColumns+`
	`, tenantID, identity.Name, params.Platform, identity.ID, params.AccessToken, params.RefreshToken, profilePicture).Scan(
		&page.ID, &page.TenantID, &page.Name, &page.Platform, &page.PageID,
		&page.AccessToken, &page.RefreshToken, &page.TokenExpiresAt, &page.Status,
		&page.ProfilePicture, &page.Metadata, &page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPageAlreadyConnected
		}
		return nil, fmt.Errorf("failed to create social page: %w", err)
	}
	return &page, nil
}

// GetPageInTenant resolves a page only within the given tenant. Pages of
// other tenants are reported as not found, never as forbidden.
func (s *AccountService) GetPageInTenant(ctx context.Context, tenantID, pageID uuid.UUID) (*models.SocialPage, error) {
	var page models.SocialPage
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+pageColumns+` FROM social_pages WHERE id = $1 AND tenant_id = $2
	`, pageID, tenantID).Scan(
		&page.ID, &page.TenantID, &page.Name, &page.Platform, &page.PageID,
		&page.AccessToken, &page.RefreshToken, &page.TokenExpiresAt, &page.Status,
		&page.ProfilePicture, &page.Metadata, &page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

func (s *AccountService) GetPages(ctx context.Context, tenantID uuid.UUID) ([]models.SocialPage, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+pageColumns+` FROM social_pages
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPages(rows)
}

// GetPagesByPlatform lists a tenant's pages, optionally restricted to one
// platform. An empty platform matches all.
func (s *AccountService) GetPagesByPlatform(ctx context.Context, tenantID uuid.UUID, platformName string) ([]models.SocialPage, error) {
	if platformName == "" {
		return s.GetPages(ctx, tenantID)
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+pageColumns+` FROM social_pages
		WHERE tenant_id = $1 AND platform = $2
		ORDER BY created_at DESC
	`, tenantID, platformName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPages(rows)
}

type UpdatePageParams struct {
	Name        *string
	Status      *string
	AccessToken *string
}

func (s *AccountService) UpdatePage(ctx context.Context, tenantID, pageID uuid.UUID, params UpdatePageParams) (*models.SocialPage, error) {
	page, err := s.GetPageInTenant(ctx, tenantID, pageID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		page.Name = *params.Name
	}
	if params.Status != nil {
		page.Status = *params.Status
	}
	if params.AccessToken != nil {
		page.AccessToken = *params.AccessToken
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE social_pages SET name = $1, status = $2, access_token = $3, updated_at = NOW()
		WHERE id = $4 AND tenant_id = $5
	`, page.Name, page.Status, page.AccessToken, pageID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to update social page: %w", err)
	}
	return page, nil
}

func (s *AccountService) DeletePage(ctx context.Context, tenantID, pageID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM social_pages WHERE id = $1 AND tenant_id = $2
	`, pageID, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPageNotFound
	}
	return nil
}

// GetAllPages is the platform-admin view across tenants. A nil tenantID
// matches every tenant.
func (s *AccountService) GetAllPages(ctx context.Context, tenantID *uuid.UUID) ([]models.SocialPage, error) {
	if tenantID != nil {
		return s.GetPages(ctx, *tenantID)
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT ` + pageColumns + ` FROM social_pages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPages(rows)
}

func scanPages(rows pgx.Rows) ([]models.SocialPage, error) {
	var pages []models.SocialPage
	for rows.Next() {
		var page models.SocialPage
		if err := rows.Scan(
			&page.ID, &page.TenantID, &page.Name, &page.Platform, &page.PageID,
			&page.AccessToken, &page.RefreshToken, &page.TokenExpiresAt, &page.Status,
			&page.ProfilePicture, &page.Metadata, &page.CreatedAt, &page.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}
