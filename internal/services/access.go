package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
)

// ErrForbidden is the uniform denial outcome for page-scoped operations.
var ErrForbidden = errors.New("access to this page is denied")

// AccessService decides whether an actor may act on a social page. It is a
// pure decision over explicit actor state and foreign-key joins; it performs
// no writes and must be consulted before any page-scoped read or write.
type AccessService struct {
	db *database.DB
}

func NewAccessService(db *database.DB) *AccessService {
	return &AccessService{db: db}
}

// CanAccessPage grants tenant admins every page of their own tenant, and
// employees exactly the pages in their explicit grant set. Actors without a
// tenant association are always denied.
func (s *AccessService) CanAccessPage(ctx context.Context, actor *models.User, pageID uuid.UUID) (bool, error) {
	if actor == nil || actor.TenantID == nil {
		return false, nil
	}

	switch actor.Role {
	case models.RoleTenantAdmin:
		var exists bool
		err := s.db.Pool.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM social_pages WHERE id = $1 AND tenant_id = $2)
		`, pageID, *actor.TenantID).Scan(&exists)
		return exists, err

	case models.RoleTenantUser:
		var exists bool
		err := s.db.Pool.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM user_page_grants g
				JOIN social_pages p ON p.id = g.page_id
				WHERE g.user_id = $1 AND g.page_id = $2 AND p.tenant_id = $3
			)
		`, actor.ID, pageID, *actor.TenantID).Scan(&exists)
		return exists, err
	}

	return false, nil
}

// RequirePageAccess is CanAccessPage collapsed into the Forbidden outcome.
func (s *AccessService) RequirePageAccess(ctx context.Context, actor *models.User, pageID uuid.UUID) error {
	ok, err := s.CanAccessPage(ctx, actor, pageID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
