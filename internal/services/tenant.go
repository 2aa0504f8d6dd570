package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
)

var (
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrTenantNameTaken = errors.New("tenant with this name already exists")
	ErrTenantHasUsers  = errors.New("tenant still owns users")
)

type TenantService struct {
	db *database.DB
}

func NewTenantService(db *database.DB) *TenantService {
	return &TenantService{db: db}
}

type CreateTenantParams struct {
	Name           string
	Description    *string
	MaxSocialPages int
}

type UpdateTenantParams struct {
	Name           *string
	Description    *string
	MaxSocialPages *int
	IsActive       *bool
}

func (s *TenantService) Create(ctx context.Context, params CreateTenantParams) (*models.Tenant, error) {
	maxPages := params.MaxSocialPages
	if maxPages <= 0 {
		maxPages = 5
	}

	var tenant models.Tenant
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO tenants (name, description, max_social_pages)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, max_social_pages, is_active, created_at, updated_at
	`, params.Name, params.Description, maxPages).Scan(
		&tenant.ID, &tenant.Name, &tenant.Description, &tenant.MaxSocialPages,
		&tenant.IsActive, &tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTenantNameTaken
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return &tenant, nil
}

func (s *TenantService) GetByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, max_social_pages, is_active, created_at, updated_at
		FROM tenants WHERE id = $1
	`, tenantID).Scan(
		&tenant.ID, &tenant.Name, &tenant.Description, &tenant.MaxSocialPages,
		&tenant.IsActive, &tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (s *TenantService) GetAll(ctx context.Context) ([]models.Tenant, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, description, max_social_pages, is_active, created_at, updated_at
		FROM tenants ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var tenant models.Tenant
		if err := rows.Scan(
			&tenant.ID, &tenant.Name, &tenant.Description, &tenant.MaxSocialPages,
			&tenant.IsActive, &tenant.CreatedAt, &tenant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (s *TenantService) Update(ctx context.Context, tenantID uuid.UUID, params UpdateTenantParams) (*models.Tenant, error) {
	tenant, err := s.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		tenant.Name = *params.Name
	}
	if params.Description != nil {
		tenant.Description = params.Description
	}
	if params.MaxSocialPages != nil {
		tenant.MaxSocialPages = *params.MaxSocialPages
	}
	if params.IsActive != nil {
		tenant.IsActive = *params.IsActive
	}

	err = s.db.Pool.QueryRow(ctx, `
		UPDATE tenants SET name = $1, description = $2, max_social_pages = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, description, max_social_pages, is_active, created_at, updated_at
	`, tenant.Name, tenant.Description, tenant.MaxSocialPages, tenant.IsActive, tenantID).Scan(
		&tenant.ID, &tenant.Name, &tenant.Description, &tenant.MaxSocialPages,
		&tenant.IsActive, &tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTenantNameTaken
		}
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return tenant, nil
}

// Delete refuses while the tenant still owns users; the users FK RESTRICTs
// the delete and the violation is surfaced as ErrTenantHasUsers.
func (s *TenantService) Delete(ctx context.Context, tenantID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrTenantHasUsers
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

type PlatformStatistics struct {
	Tenants     int `json:"tenants"`
	Users       int `json:"users"`
	SocialPages int `json:"social_pages"`
	Posts       int `json:"posts"`
	Messages    int `json:"messages"`
}

func (s *TenantService) GetStatistics(ctx context.Context) (*PlatformStatistics, error) {
	var stats PlatformStatistics
	err := s.db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tenants),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM social_pages),
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM messages)
	`).Scan(&stats.Tenants, &stats.Users, &stats.SocialPages, &stats.Posts, &stats.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}
	return &stats, nil
}
