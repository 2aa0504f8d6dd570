package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
	"github.com/socialdesk/socialdesk-api/internal/services"
)

// AuthServiceInterface defines the methods used by handlers from AuthService
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string, loginType services.LoginType) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateEmployee(ctx context.Context, tenantID uuid.UUID, params services.CreateEmployeeParams) (*models.User, error)
	GetEmployees(ctx context.Context, tenantID uuid.UUID) ([]models.User, error)
	GetEmployeeByID(ctx context.Context, tenantID, employeeID uuid.UUID) (*models.User, error)
	UpdateEmployee(ctx context.Context, tenantID, employeeID uuid.UUID, params services.UpdateEmployeeParams) (*models.User, error)
	DeleteEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) error
	CreateTenantAdmin(ctx context.Context, tenantID uuid.UUID, email, password, fullName string) (*models.User, error)
	CreateAdmin(ctx context.Context, params services.CreateAdminParams) (*models.User, error)
	GetAdmins(ctx context.Context) ([]models.User, error)
	DeleteAdmin(ctx context.Context, adminID uuid.UUID) error
}

// TenantServiceInterface defines the methods used by handlers from TenantService
type TenantServiceInterface interface {
	Create(ctx context.Context, params services.CreateTenantParams) (*models.Tenant, error)
	GetByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	GetAll(ctx context.Context) ([]models.Tenant, error)
	Update(ctx context.Context, tenantID uuid.UUID, params services.UpdateTenantParams) (*models.Tenant, error)
	Delete(ctx context.Context, tenantID uuid.UUID) error
	GetStatistics(ctx context.Context) (*services.PlatformStatistics, error)
}

// AccountServiceInterface defines the methods used by handlers from AccountService
type AccountServiceInterface interface {
	ConnectPage(ctx context.Context, tenantID uuid.UUID, params services.ConnectPageParams) (*models.SocialPage, error)
	GetPages(ctx context.Context, tenantID uuid.UUID) ([]models.SocialPage, error)
	GetPageInTenant(ctx context.Context, tenantID, pageID uuid.UUID) (*models.SocialPage, error)
	UpdatePage(ctx context.Context, tenantID, pageID uuid.UUID, params services.UpdatePageParams) (*models.SocialPage, error)
	DeletePage(ctx context.Context, tenantID, pageID uuid.UUID) error
	GetAllPages(ctx context.Context, tenantID *uuid.UUID) ([]models.SocialPage, error)
}

// AccessServiceInterface defines the methods used by handlers from AccessService
type AccessServiceInterface interface {
	RequirePageAccess(ctx context.Context, actor *models.User, pageID uuid.UUID) error
}

// PostServiceInterface defines the methods used by handlers from PostService
type PostServiceInterface interface {
	GetPosts(ctx context.Context, tenantID, pageID uuid.UUID, query services.PostQuery) ([]models.Post, error)
	GetPostByID(ctx context.Context, tenantID, pageID, postID uuid.UUID, refresh bool) (*models.Post, error)
	CreatePost(ctx context.Context, tenantID, pageID uuid.UUID, params services.CreatePostParams) (*models.Post, error)
	GetAllPosts(ctx context.Context, tenantID uuid.UUID, platformName string, query services.PostQuery) ([]models.Post, []services.PageSyncError, error)
}

// MessageServiceInterface defines the methods used by handlers from MessageService
type MessageServiceInterface interface {
	GetMessages(ctx context.Context, tenantID, pageID uuid.UUID, query services.MessageQuery) ([]models.Message, error)
	GetConversations(ctx context.Context, tenantID, pageID uuid.UUID, refresh bool) ([]models.Conversation, error)
	SendMessage(ctx context.Context, tenantID, pageID uuid.UUID, params services.SendMessageParams) (*models.Message, error)
	MarkRead(ctx context.Context, tenantID, pageID, messageID uuid.UUID) error
	MarkConversationRead(ctx context.Context, tenantID, pageID uuid.UUID, conversationID string) error
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendEmail(ctx context.Context, tenantID, pageID uuid.UUID, params services.SendEmailParams) (string, error)
	ReplyToEmail(ctx context.Context, tenantID, pageID uuid.UUID, params services.ReplyEmailParams) (string, error)
	GetEmails(ctx context.Context, tenantID, pageID uuid.UUID, opts platform.FetchOptions) ([]platform.Item, error)
	GetEmailByID(ctx context.Context, tenantID, pageID uuid.UUID, messageID string) (*platform.Item, error)
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateAccessToken(userID uuid.UUID, email, role string, tenantID *uuid.UUID, adminPerms, tenantPerms []string) (string, error)
	AccessExpiry() time.Duration
}
