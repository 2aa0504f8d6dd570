package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/socialdesk/socialdesk-api/pkg/dto"
)

// AdminHandler serves the platform-level surface: tenant lifecycle, admin
// accounts and cross-tenant statistics.
type AdminHandler struct {
	tenantService  TenantServiceInterface
	userService    UserServiceInterface
	accountService AccountServiceInterface
}

func NewAdminHandler(tenantService TenantServiceInterface, userService UserServiceInterface, accountService AccountServiceInterface) *AdminHandler {
	return &AdminHandler{
		tenantService:  tenantService,
		userService:    userService,
		accountService: accountService,
	}
}

func (h *AdminHandler) CreateTenant(c *drift.Context) {
	var req dto.CreateTenantRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	tenant, err := h.tenantService.Create(context.Background(), services.CreateTenantParams{
		Name:           req.Name,
		Description:    req.Description,
		MaxSocialPages: req.MaxSocialPages,
	})
	if err != nil {
		if errors.Is(err, services.ErrTenantNameTaken) {
			c.BadRequest("tenant with this name already exists")
			return
		}
		c.InternalServerError("failed to create tenant")
		return
	}

	_ = c.JSON(201, tenant)
}

func (h *AdminHandler) ListTenants(c *drift.Context) {
	tenants, err := h.tenantService.GetAll(context.Background())
	if err != nil {
		c.InternalServerError("failed to list tenants")
		return
	}
	_ = c.JSON(200, tenants)
}

func (h *AdminHandler) GetTenant(c *drift.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid tenant id")
		return
	}

	tenant, err := h.tenantService.GetByID(context.Background(), tenantID)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			c.NotFound("tenant not found")
			return
		}
		c.InternalServerError("failed to get tenant")
		return
	}

	_ = c.JSON(200, tenant)
}

func (h *AdminHandler) UpdateTenant(c *drift.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid tenant id")
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	tenant, err := h.tenantService.Update(context.Background(), tenantID, services.UpdateTenantParams{
		Name:           req.Name,
		Description:    req.Description,
		MaxSocialPages: req.MaxSocialPages,
		IsActive:       req.IsActive,
	})
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			c.NotFound("tenant not found")
			return
		}
		if errors.Is(err, services.ErrTenantNameTaken) {
			c.BadRequest("tenant with this name already exists")
			return
		}
		c.InternalServerError("failed to update tenant")
		return
	}

	_ = c.JSON(200, tenant)
}

func (h *AdminHandler) DeleteTenant(c *drift.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid tenant id")
		return
	}

	if err := h.tenantService.Delete(context.Background(), tenantID); err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			c.NotFound("tenant not found")
			return
		}
		if errors.Is(err, services.ErrTenantHasUsers) {
			c.BadRequest("tenant still has users, remove them first")
			return
		}
		c.InternalServerError("failed to delete tenant")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "tenant deleted"})
}

// CreateTenantAdmin provisions the administrator account of a tenant.
func (h *AdminHandler) CreateTenantAdmin(c *drift.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid tenant id")
		return
	}

	var req dto.CreateTenantAdminRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	if _, err := h.tenantService.GetByID(context.Background(), tenantID); err != nil {
		c.NotFound("tenant not found")
		return
	}

	user, err := h.userService.CreateTenantAdmin(context.Background(), tenantID, req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.BadRequest("user with this email already exists")
			return
		}
		c.InternalServerError("failed to create tenant admin")
		return
	}

	_ = c.JSON(201, toUserResponse(user))
}

// ListTenantPages is the platform-admin view over a tenant's connected pages.
func (h *AdminHandler) ListTenantPages(c *drift.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid tenant id")
		return
	}

	pages, err := h.accountService.GetAllPages(context.Background(), &tenantID)
	if err != nil {
		c.InternalServerError("failed to list pages")
		return
	}

	_ = c.JSON(200, pages)
}

func (h *AdminHandler) CreateAdmin(c *drift.Context) {
	var req dto.CreateAdminRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	user, err := h.userService.CreateAdmin(context.Background(), services.CreateAdminParams{
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
		Role:             models.RoleAdmin,
		AdminPermissions: req.Permissions,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.BadRequest("user with this email already exists")
			return
		}
		c.InternalServerError("failed to create admin")
		return
	}

	_ = c.JSON(201, toUserResponse(user))
}

func (h *AdminHandler) ListAdmins(c *drift.Context) {
	admins, err := h.userService.GetAdmins(context.Background())
	if err != nil {
		c.InternalServerError("failed to list admins")
		return
	}

	response := make([]dto.UserResponse, len(admins))
	for i := range admins {
		response[i] = toUserResponse(&admins[i])
	}
	_ = c.JSON(200, response)
}

func (h *AdminHandler) DeleteAdmin(c *drift.Context) {
	adminID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid admin id")
		return
	}

	if err := h.userService.DeleteAdmin(context.Background(), adminID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("admin not found")
			return
		}
		c.InternalServerError("failed to delete admin")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "admin deleted"})
}

func (h *AdminHandler) GetStatistics(c *drift.Context) {
	stats, err := h.tenantService.GetStatistics(context.Background())
	if err != nil {
		c.InternalServerError("failed to load statistics")
		return
	}
	_ = c.JSON(200, stats)
}
