package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/socialdesk/socialdesk-api/internal/config"
	"github.com/socialdesk/socialdesk-api/internal/database"
	"github.com/socialdesk/socialdesk-api/internal/models"
	"github.com/socialdesk/socialdesk-api/internal/services"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Println("Usage: create-super-admin <email> <password> <full name>")
		os.Exit(1)
	}

	email, password, fullName := os.Args[1], os.Args[2], os.Args[3]

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

	userService := services.NewUserService(db)
	user, err := userService.CreateAdmin(ctx, services.CreateAdminParams{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     models.RoleSuperAdmin,
		AdminPermissions: []string{
			models.PermManageTenants,
			models.PermManageAdmins,
			models.PermViewStatistics,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create super admin: %v", err)
	}

	fmt.Printf("Created super admin %s (%s)\n", user.Email, user.ID)
}
