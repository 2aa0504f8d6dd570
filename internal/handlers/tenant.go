package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/socialdesk/socialdesk-api/pkg/dto"
)

// TenantHandler serves the tenant-admin surface: employees and connected
// social pages of the caller's own tenant.
type TenantHandler struct {
	userService    UserServiceInterface
	accountService AccountServiceInterface
}

func NewTenantHandler(userService UserServiceInterface, accountService AccountServiceInterface) *TenantHandler {
	return &TenantHandler{
		userService:    userService,
		accountService: accountService,
	}
}

func (h *TenantHandler) CreateEmployee(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	user, err := h.userService.CreateEmployee(context.Background(), tenantID, services.CreateEmployeeParams{
		Email:             req.Email,
		Password:          req.Password,
		FullName:          req.FullName,
		TenantPermissions: req.Permissions,
		AuthorizedPageIDs: req.PageIDs,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.BadRequest("user with this email already exists")
			return
		}
		if errors.Is(err, services.ErrInvalidPageGrant) {
			c.BadRequest("some page ids do not belong to this tenant")
			return
		}
		c.InternalServerError("failed to create employee")
		return
	}

	_ = c.JSON(201, toUserResponse(user))
}

func (h *TenantHandler) ListEmployees(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	employees, err := h.userService.GetEmployees(context.Background(), tenantID)
	if err != nil {
		c.InternalServerError("failed to list employees")
		return
	}

	response := make([]dto.UserResponse, len(employees))
	for i := range employees {
		response[i] = toUserResponse(&employees[i])
	}
	_ = c.JSON(200, response)
}

func (h *TenantHandler) GetEmployee(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid employee id")
		return
	}

	user, err := h.userService.GetEmployeeByID(context.Background(), tenantID, employeeID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("employee not found")
			return
		}
		c.InternalServerError("failed to get employee")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *TenantHandler) UpdateEmployee(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid employee id")
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	params := services.UpdateEmployeeParams{
		FullName: req.FullName,
		IsActive: req.IsActive,
	}
	if req.Permissions != nil {
		params.TenantPermissions = *req.Permissions
	}
	if req.PageIDs != nil {
		params.AuthorizedPageIDs = *req.PageIDs
	}

	user, err := h.userService.UpdateEmployee(context.Background(), tenantID, employeeID, params)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("employee not found")
			return
		}
		if errors.Is(err, services.ErrInvalidPageGrant) {
			c.BadRequest("some page ids do not belong to this tenant")
			return
		}
		c.InternalServerError("failed to update employee")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *TenantHandler) DeleteEmployee(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid employee id")
		return
	}

	if err := h.userService.DeleteEmployee(context.Background(), tenantID, employeeID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("employee not found")
			return
		}
		c.InternalServerError("failed to delete employee")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "employee deleted"})
}

func (h *TenantHandler) ConnectPage(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var req dto.ConnectPageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Platform == "" || req.AccessToken == "" {
		c.BadRequest("platform and access_token are required")
		return
	}

	page, err := h.accountService.ConnectPage(context.Background(), tenantID, services.ConnectPageParams{
		Platform:     req.Platform,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPlatform):
			c.BadRequest("unsupported platform")
		case errors.Is(err, services.ErrPageLimitReached):
			c.BadRequest("maximum number of social pages reached")
		case errors.Is(err, services.ErrPageAlreadyConnected):
			c.BadRequest("this page is already connected")
		default:
			c.InternalServerError("failed to connect page")
		}
		return
	}

	_ = c.JSON(201, page)
}

func (h *TenantHandler) ListPages(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	pages, err := h.accountService.GetPages(context.Background(), tenantID)
	if err != nil {
		c.InternalServerError("failed to list pages")
		return
	}
	_ = c.JSON(200, pages)
}

func (h *TenantHandler) GetPage(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	page, err := h.accountService.GetPageInTenant(context.Background(), tenantID, pageID)
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.NotFound("page not found")
			return
		}
		c.InternalServerError("failed to get page")
		return
	}
	_ = c.JSON(200, page)
}

func (h *TenantHandler) UpdatePage(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	page, err := h.accountService.UpdatePage(context.Background(), tenantID, pageID, services.UpdatePageParams{
		Name:        req.Name,
		Status:      req.Status,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.NotFound("page not found")
			return
		}
		c.InternalServerError("failed to update page")
		return
	}
	_ = c.JSON(200, page)
}

func (h *TenantHandler) DeletePage(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	if err := h.accountService.DeletePage(context.Background(), tenantID, pageID); err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.NotFound("page not found")
			return
		}
		c.InternalServerError("failed to delete page")
		return
	}
	_ = c.JSON(200, dto.MessageResponse{Message: "page disconnected"})
}
