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
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrInvalidPageGrant = errors.New("some page ids are invalid")
)

const userColumns = `id, email, password_hash, full_name, role, admin_permissions, tenant_permissions,
	tenant_id, is_active, last_login, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

type CreateEmployeeParams struct {
	Email             string
	Password          string
	FullName          string
	TenantPermissions []string
	AuthorizedPageIDs []uuid.UUID
}

type UpdateEmployeeParams struct {
	FullName          *string
	TenantPermissions []string
	IsActive          *bool
	AuthorizedPageIDs []uuid.UUID
}

func (s *UserService) CreateEmployee(ctx context.Context, tenantID uuid.UUID, params CreateEmployeeParams) (*models.User, error) {
	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	perms := params.TenantPermissions
	if perms == nil {
		perms = []string{}
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, role, tenant_permissions, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, params.Email, passwordHash, params.FullName, models.RoleTenantUser, perms, tenantID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
		&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	if len(params.AuthorizedPageIDs) > 0 {
		if err := s.SetAuthorizedPages(ctx, tenantID, user.ID, params.AuthorizedPageIDs); err != nil {
			return nil, err
		}
		user.AuthorizedPageIDs = params.AuthorizedPageIDs
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
		&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetEmployees(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (s *UserService) GetEmployeeByID(ctx context.Context, tenantID, employeeID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1 AND tenant_id = $2
	`, employeeID, tenantID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
		&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	pageIDs, err := s.GetAuthorizedPageIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.AuthorizedPageIDs = pageIDs

	return &user, nil
}

func (s *UserService) UpdateEmployee(ctx context.Context, tenantID, employeeID uuid.UUID, params UpdateEmployeeParams) (*models.User, error) {
	user, err := s.GetEmployeeByID(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		user.FullName = *params.FullName
	}
	if params.TenantPermissions != nil {
		user.TenantPermissions = params.TenantPermissions
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE users SET full_name = $1, tenant_permissions = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4 AND tenant_id = $5
	`, user.FullName, user.TenantPermissions, user.IsActive, employeeID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	if params.AuthorizedPageIDs != nil {
		if err := s.SetAuthorizedPages(ctx, tenantID, employeeID, params.AuthorizedPageIDs); err != nil {
			return nil, err
		}
		user.AuthorizedPageIDs = params.AuthorizedPageIDs
	}

	return user, nil
}

func (s *UserService) DeleteEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM users WHERE id = $1 AND tenant_id = $2 AND role = $3
	`, employeeID, tenantID, models.RoleTenantUser)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetAuthorizedPages replaces an employee's explicit page grants. Every
// granted page must belong to the employee's tenant.
func (s *UserService) SetAuthorizedPages(ctx context.Context, tenantID, userID uuid.UUID, pageIDs []uuid.UUID) error {
	if len(pageIDs) > 0 {
		var count int
		err := s.db.Pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM social_pages WHERE id = ANY($1) AND tenant_id = $2
		`, pageIDs, tenantID).Scan(&count)
		if err != nil {
			return err
		}
		if count != len(pageIDs) {
			return ErrInvalidPageGrant
		}
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_page_grants WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear page grants: %w", err)
	}

	for _, pageID := range pageIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_page_grants (user_id, page_id) VALUES ($1, $2)
			ON CONFLICT (user_id, page_id) DO NOTHING
		`, userID, pageID); err != nil {
			return fmt.Errorf("failed to grant page access: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *UserService) GetAuthorizedPageIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT page_id FROM user_page_grants WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pageIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		pageIDs = append(pageIDs, id)
	}
	return pageIDs, rows.Err()
}

// CreateTenantAdmin provisions the administrator account for a tenant.
// Tenant admins carry no explicit permission list; the role implies all
// tenant permissions.
func (s *UserService) CreateTenantAdmin(ctx context.Context, tenantID uuid.UUID, email, password, fullName string) (*models.User, error) {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, role, tenant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, email, passwordHash, fullName, models.RoleTenantAdmin, tenantID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
		&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create tenant admin: %w", err)
	}
	return &user, nil
}

type CreateAdminParams struct {
	Email            string
	Password         string
	FullName         string
	Role             string
	AdminPermissions []string
}

func (s *UserService) CreateAdmin(ctx context.Context, params CreateAdminParams) (*models.User, error) {
	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	perms := params.AdminPermissions
	if perms == nil {
		perms = []string{}
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, role, admin_permissions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, params.Email, passwordHash, params.FullName, params.Role, perms).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
		&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetAdmins(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE role = $1 OR role = $2
		ORDER BY created_at DESC
	`, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (s *UserService) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM users WHERE id = $1 AND role = $2
	`, adminID, models.RoleAdmin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUsers(rows pgx.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
			&user.AdminPermissions, &user.TenantPermissions, &user.TenantID,
			&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
