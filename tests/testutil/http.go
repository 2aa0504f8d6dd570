package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/socialdesk/socialdesk-api/internal/services"
)

// TestJWTService creates a JWTService with test configuration
func TestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key-for-testing-only", 15*time.Minute)
}

// GenerateTestToken generates a valid access token for testing
func GenerateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, email, role string, tenantID *uuid.UUID, tenantPerms []string) string {
	t.Helper()
	token, err := jwtSvc.GenerateAccessToken(userID, email, role, tenantID, nil, tenantPerms)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return token
}

// AuthHeader returns an Authorization header value with a Bearer token
func AuthHeader(token string) string {
	return "Bearer " + token
}
