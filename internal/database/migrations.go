package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) UNIQUE NOT NULL,
		description TEXT,
		max_social_pages INTEGER NOT NULL DEFAULT 5,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Tenant deletion is rejected while it still owns users.
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'tenant_user',
		admin_permissions TEXT[] NOT NULL DEFAULT '{}',
		tenant_permissions TEXT[] NOT NULL DEFAULT '{}',
		tenant_id UUID REFERENCES tenants(id) ON DELETE RESTRICT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// An external account may be connected to a tenant only once.
	`CREATE TABLE IF NOT EXISTS social_pages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tenant_id UUID NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		platform VARCHAR(50) NOT NULL,
		page_id VARCHAR(255) NOT NULL,
		access_token TEXT NOT NULL,
		refresh_token TEXT,
		token_expires_at TIMESTAMP WITH TIME ZONE,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		profile_picture VARCHAR(500),
		metadata JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(tenant_id, platform, page_id)
	)`,

	// Explicit employee-to-page visibility, orthogonal to role.
	`CREATE TABLE IF NOT EXISTS user_page_grants (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		page_id UUID NOT NULL REFERENCES social_pages(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, page_id)
	)`,

	// (social_page_id, external_id) uniqueness makes reconciliation upserts
	// safe under concurrent refreshes.
	`CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		social_page_id UUID NOT NULL REFERENCES social_pages(id) ON DELETE CASCADE,
		external_id VARCHAR(255) NOT NULL,
		platform VARCHAR(50) NOT NULL,
		content TEXT,
		media_urls TEXT[] NOT NULL DEFAULT '{}',
		likes INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		shares INTEGER NOT NULL DEFAULT 0,
		metadata JSONB,
		posted_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(social_page_id, external_id)
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		social_page_id UUID NOT NULL REFERENCES social_pages(id) ON DELETE CASCADE,
		external_id VARCHAR(255) NOT NULL,
		conversation_id VARCHAR(255) NOT NULL,
		platform VARCHAR(50) NOT NULL,
		content TEXT NOT NULL,
		sender_id VARCHAR(255) NOT NULL,
		sender_name VARCHAR(255),
		is_from_page BOOLEAN NOT NULL DEFAULT FALSE,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		attachments TEXT[] NOT NULL DEFAULT '{}',
		metadata JSONB,
		sent_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(social_page_id, external_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_tenant_id ON users(tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_social_pages_tenant_id ON social_pages(tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_page_grants_user_id ON user_page_grants(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_page_grants_page_id ON user_page_grants(page_id)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_social_page_id ON posts(social_page_id)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_posted_at ON posts(posted_at)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_social_page_id ON messages(social_page_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(social_page_id, conversation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_sent_at ON messages(sent_at)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
