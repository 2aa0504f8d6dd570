package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)
	userID := uuid.New()
	tenantID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "user@example.com", "tenant_user", &tenantID,
		nil, []string{"view_posts", "view_messages"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "tenant_user", claims.Role)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, tenantID, *claims.TenantID)
	assert.Equal(t, []string{"view_posts", "view_messages"}, claims.TenantPermissions)
	assert.Empty(t, claims.AdminPermissions)
}

func TestJWTService_ValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute)
	verifier := NewJWTService("secret-b", 15*time.Minute)

	token, err := issuer.GenerateAccessToken(uuid.New(), "user@example.com", "tenant_user", nil, nil, nil)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", "tenant_user", nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
