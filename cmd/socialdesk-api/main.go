package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/socialdesk/socialdesk-api/internal/config"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/handlers"
	authmw "github.com/socialdesk/socialdesk-api/internal/middleware"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/platform"
	"github.com/socialdesk/socialdesk-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	gmailAdapter := platform.NewGmailAdapter()
	adapters := platform.NewRegistry(
		platform.NewFacebookAdapter(),
		platform.NewInstagramAdapter(),
		gmailAdapter,
	)

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	tenantService := services.NewTenantService(db)
	accountService := services.NewAccountService(db, adapters)
	accessService := services.NewAccessService(db)
	postStore := services.NewPostStore(db)
	messageStore := services.NewMessageStore(db)
	postService := services.NewPostService(accountService, postStore, adapters)
	messageService := services.NewMessageService(accountService, messageStore, adapters)
	emailService := services.NewEmailService(accountService, gmailAdapter)

	authHandler := handlers.NewAuthHandler(authService, userService, jwtService)
	adminHandler := handlers.NewAdminHandler(tenantService, userService, accountService)
	tenantHandler := handlers.NewTenantHandler(userService, accountService)
	postsHandler := handlers.NewPostsHandler(postService, accessService)
	messagesHandler := handlers.NewMessagesHandler(messageService, accessService)
	emailHandler := handlers.NewEmailHandler(emailService, accessService)
	webhookHandler := handlers.NewWebhookHandler(cfg.FacebookVerifyToken)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/admin/login", authHandler.AdminLogin)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	admin := protected.Group("/admin")
	admin.Use(authmw.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
	admin.Post("/tenants", authmw.RequireAdminPermission(models.PermManageTenants, adminHandler.CreateTenant))
	admin.Get("/tenants", authmw.RequireAdminPermission(models.PermManageTenants, adminHandler.ListTenants))
	admin.Get("/tenants/:id", authmw.RequireAdminPermission(models.PermManageTenants, adminHandler.GetTenant))
	admin.Patch("/tenants/:id", authmw.RequireAdminPermission(models.PermManageTenants, adminHandler.UpdateTenant))
	admin.Delete("/tenants/:id", authmw.RequireAdminPermission(models.PermManageTenants, adminHandler.DeleteTenant))
	admin.Post("/tenants/:id/admin", authmw.RequireAdminPermission(models.PermManageTenants, adminHandler.CreateTenantAdmin))
	admin.Get("/tenants/:id/pages", authmw.RequireAdminPermission(models.PermManageTenants, adminHandler.ListTenantPages))
	admin.Post("/admins", authmw.RequireAdminPermission(models.PermManageAdmins, adminHandler.CreateAdmin))
	admin.Get("/admins", authmw.RequireAdminPermission(models.PermManageAdmins, adminHandler.ListAdmins))
	admin.Delete("/admins/:id", authmw.RequireAdminPermission(models.PermManageAdmins, adminHandler.DeleteAdmin))
	admin.Get("/statistics", authmw.RequireAdminPermission(models.PermViewStatistics, adminHandler.GetStatistics))

	tenant := protected.Group("/tenant")
	tenant.Use(authmw.RequireRoles(models.RoleTenantAdmin, models.RoleTenantUser))
	tenant.Post("/employees", authmw.RequireTenantPermission(models.PermManageEmployees, tenantHandler.CreateEmployee))
	tenant.Get("/employees", authmw.RequireTenantPermission(models.PermManageEmployees, tenantHandler.ListEmployees))
	tenant.Get("/employees/:id", authmw.RequireTenantPermission(models.PermManageEmployees, tenantHandler.GetEmployee))
	tenant.Patch("/employees/:id", authmw.RequireTenantPermission(models.PermManageEmployees, tenantHandler.UpdateEmployee))
	tenant.Delete("/employees/:id", authmw.RequireTenantPermission(models.PermManageEmployees, tenantHandler.DeleteEmployee))

	tenant.Post("/pages", authmw.RequireTenantPermission(models.PermManageSocialPages, tenantHandler.ConnectPage))
	tenant.Get("/pages", tenantHandler.ListPages)
	tenant.Get("/pages/:pageId", tenantHandler.GetPage)
	tenant.Patch("/pages/:pageId", authmw.RequireTenantPermission(models.PermManageSocialPages, tenantHandler.UpdatePage))
	tenant.Delete("/pages/:pageId", authmw.RequireTenantPermission(models.PermManageSocialPages, tenantHandler.DeletePage))

	content := protected.Group("")
	content.Use(authmw.RequireRoles(models.RoleTenantAdmin, models.RoleTenantUser))

	content.Get("/posts", authmw.RequireTenantPermission(models.PermViewPosts, postsHandler.ListAll))
	content.Post("/posts", authmw.RequireTenantPermission(models.PermCreatePosts, postsHandler.Create))
	content.Get("/posts/page/:pageId", authmw.RequireTenantPermission(models.PermViewPosts, postsHandler.List))
	content.Get("/posts/page/:pageId/post/:postId", authmw.RequireTenantPermission(models.PermViewPosts, postsHandler.Get))

	content.Get("/messages/page/:pageId", authmw.RequireTenantPermission(models.PermViewMessages, messagesHandler.List))
	content.Get("/messages/page/:pageId/conversations", authmw.RequireTenantPermission(models.PermViewMessages, messagesHandler.Conversations))
	content.Post("/messages/send", authmw.RequireTenantPermission(models.PermManageMessages, messagesHandler.Send))
	content.Post("/messages/page/:pageId/message/:messageId/read", authmw.RequireTenantPermission(models.PermManageMessages, messagesHandler.MarkRead))
	content.Post("/messages/page/:pageId/conversation/:conversationId/read", authmw.RequireTenantPermission(models.PermManageMessages, messagesHandler.MarkConversationRead))

	content.Post("/email/send", authmw.RequireTenantPermission(models.PermSendEmails, emailHandler.Send))
	content.Post("/email/reply", authmw.RequireTenantPermission(models.PermSendEmails, emailHandler.Reply))
	content.Get("/email/page/:pageId", authmw.RequireTenantPermission(models.PermViewMessages, emailHandler.List))
	content.Get("/email/page/:pageId/message/:messageId", authmw.RequireTenantPermission(models.PermViewMessages, emailHandler.Get))

	api.Get("/webhooks/facebook", webhookHandler.Verify)
	api.Post("/webhooks/facebook", webhookHandler.Receive)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
