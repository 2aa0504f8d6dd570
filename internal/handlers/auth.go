package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/middleware"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/socialdesk/socialdesk-api/pkg/dto"
)

type AuthHandler struct {
	authService AuthServiceInterface
	userService UserServiceInterface
	jwtService  JWTServiceInterface
}

func NewAuthHandler(authService AuthServiceInterface, userService UserServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		jwtService:  jwtService,
	}
}

// Login authenticates tenant admins and employees.
func (h *AuthHandler) Login(c *drift.Context) {
	h.login(c, services.LoginTypeUser)
}

// AdminLogin authenticates platform admins and super admins.
func (h *AuthHandler) AdminLogin(c *drift.Context) {
	h.login(c, services.LoginTypeAdmin)
}

func (h *AuthHandler) login(c *drift.Context, loginType services.LoginType) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	user, err := h.authService.Login(context.Background(), req.Email, req.Password, loginType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized("invalid credentials")
			return
		}
		c.InternalServerError("login failed")
		return
	}

	token, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role, user.TenantID, user.AdminPermissions, user.TenantPermissions)
	if err != nil {
		c.InternalServerError("failed to issue token")
		return
	}

	_ = c.JSON(200, dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.jwtService.AccessExpiry().Seconds()),
		User:        toUserResponse(user),
	})
}

func (h *AuthHandler) Me(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *AuthHandler) ChangePassword(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.NewPassword == "" {
		c.BadRequest("new password is required")
		return
	}

	if err := h.authService.ChangePassword(context.Background(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			c.BadRequest("current password is incorrect")
			return
		}
		c.InternalServerError("failed to change password")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "password changed"})
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FullName:          user.FullName,
		Role:              user.Role,
		AdminPermissions:  user.AdminPermissions,
		TenantPermissions: user.TenantPermissions,
		TenantID:          user.TenantID,
		IsActive:          user.IsActive,
		LastLogin:         user.LastLogin,
		AuthorizedPageIDs: user.AuthorizedPageIDs,
		CreatedAt:         user.CreatedAt,
	}
}
