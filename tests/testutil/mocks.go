package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockAccessService mocks the AccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) RequirePageAccess(ctx context.Context, actor *models.User, pageID uuid.UUID) error {
	args := m.Called(ctx, actor, pageID)
	return args.Error(0)
}

// MockPostService mocks the PostService
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetPosts(ctx context.Context, tenantID, pageID uuid.UUID, query services.PostQuery) ([]models.Post, error) {
	args := m.Called(ctx, tenantID, pageID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPostByID(ctx context.Context, tenantID, pageID, postID uuid.UUID, refresh bool) (*models.Post, error) {
	args := m.Called(ctx, tenantID, pageID, postID, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, tenantID, pageID uuid.UUID, params services.CreatePostParams) (*models.Post, error) {
	args := m.Called(ctx, tenantID, pageID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetAllPosts(ctx context.Context, tenantID uuid.UUID, platformName string, query services.PostQuery) ([]models.Post, []services.PageSyncError, error) {
	args := m.Called(ctx, tenantID, platformName, query)
	var posts []models.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]models.Post)
	}
	var failures []services.PageSyncError
	if args.Get(1) != nil {
		failures = args.Get(1).([]services.PageSyncError)
	}
	return posts, failures, args.Error(2)
}

// MockMessageService mocks the MessageService
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) GetMessages(ctx context.Context, tenantID, pageID uuid.UUID, query services.MessageQuery) ([]models.Message, error) {
	args := m.Called(ctx, tenantID, pageID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageService) GetConversations(ctx context.Context, tenantID, pageID uuid.UUID, refresh bool) ([]models.Conversation, error) {
	args := m.Called(ctx, tenantID, pageID, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *MockMessageService) SendMessage(ctx context.Context, tenantID, pageID uuid.UUID, params services.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, tenantID, pageID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, tenantID, pageID, messageID uuid.UUID) error {
	args := m.Called(ctx, tenantID, pageID, messageID)
	return args.Error(0)
}

func (m *MockMessageService) MarkConversationRead(ctx context.Context, tenantID, pageID uuid.UUID, conversationID string) error {
	args := m.Called(ctx, tenantID, pageID, conversationID)
	return args.Error(0)
}

// MockAdapter mocks a platform adapter
type MockAdapter struct {
	mock.Mock
	PlatformName string
}

func (m *MockAdapter) Platform() string {
	return m.PlatformName
}

func (m *MockAdapter) FetchContent(ctx context.Context, accountRef, credential string, kind platform.ContentKind, opts platform.FetchOptions) ([]platform.Item, error) {
	args := m.Called(ctx, accountRef, credential, kind, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.Item), args.Error(1)
}

func (m *MockAdapter) FetchContentByID(ctx context.Context, credential, externalID string) (*platform.Item, error) {
	args := m.Called(ctx, credential, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.Item), args.Error(1)
}

func (m *MockAdapter) CreateContent(ctx context.Context, accountRef, credential string, req platform.CreateRequest) (string, error) {
	args := m.Called(ctx, accountRef, credential, req)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) VerifyCredential(ctx context.Context, credential string) (*platform.AccountIdentity, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.AccountIdentity), args.Error(1)
}

// MockAuthService mocks the AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, loginType services.LoginType) (*models.User, error) {
	args := m.Called(ctx, email, password, loginType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CreateEmployee(ctx context.Context, tenantID uuid.UUID, params services.CreateEmployeeParams) (*models.User, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetEmployees(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetEmployeeByID(ctx context.Context, tenantID, employeeID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, tenantID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateEmployee(ctx context.Context, tenantID, employeeID uuid.UUID, params services.UpdateEmployeeParams) (*models.User, error) {
	args := m.Called(ctx, tenantID, employeeID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) error {
	args := m.Called(ctx, tenantID, employeeID)
	return args.Error(0)
}

func (m *MockUserService) CreateTenantAdmin(ctx context.Context, tenantID uuid.UUID, email, password, fullName string) (*models.User, error) {
	args := m.Called(ctx, tenantID, email, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CreateAdmin(ctx context.Context, params services.CreateAdminParams) (*models.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetAdmins(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	args := m.Called(ctx, adminID)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmail(ctx context.Context, tenantID, pageID uuid.UUID, params services.SendEmailParams) (string, error) {
	args := m.Called(ctx, tenantID, pageID, params)
	return args.String(0), args.Error(1)
}

func (m *MockEmailService) ReplyToEmail(ctx context.Context, tenantID, pageID uuid.UUID, params services.ReplyEmailParams) (string, error) {
	args := m.Called(ctx, tenantID, pageID, params)
	return args.String(0), args.Error(1)
}

func (m *MockEmailService) GetEmails(ctx context.Context, tenantID, pageID uuid.UUID, opts platform.FetchOptions) ([]platform.Item, error) {
	args := m.Called(ctx, tenantID, pageID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.Item), args.Error(1)
}

func (m *MockEmailService) GetEmailByID(ctx context.Context, tenantID, pageID uuid.UUID, messageID string) (*platform.Item, error) {
	args := m.Called(ctx, tenantID, pageID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.Item), args.Error(1)
}
