package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sobnin/sobnin-backend/pkg/config"
	"github.com/sobnin/sobnin-backend/pkg/db"
	"github.com/sobnin/sobnin-backend/pkg/db/models"
	"github.com/sobnin/sobnin-backend/pkg/logger"
	"github.com/sobnin/sobnin-backend/pkg/security"
)

// staffctl provisions back-office accounts. There is no self-registration
// endpoint, so staff rows are created here or by a migration.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "staffctl"})

	_ = godotenv.Load()

	email := flag.String("email", "", "staff email")
	name := flag.String("name", "", "staff display name")
	password := flag.String("password", "", "initial password")
	deactivate := flag.Bool("deactivate", false, "deactivate the account instead of creating it")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "missing -email")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer client.Close()

	normalized := strings.ToLower(strings.TrimSpace(*email))

	if *deactivate {
		result := client.DB().WithContext(ctx).
			Model(&models.StaffUser{}).
			Where("email = ?", normalized).
			Update("is_active", false)
		if result.Error != nil {
			logg.Error(ctx, "failed to deactivate staff user", result.Error)
			os.Exit(1)
		}
		if result.RowsAffected == 0 {
			fmt.Fprintln(os.Stderr, "no staff user with that email")
			os.Exit(1)
		}
		fmt.Println("deactivated:", normalized)
		return
	}

	if *name == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "missing -name or -password")
		os.Exit(1)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	user := models.StaffUser{
		Email:        normalized,
		Name:         strings.TrimSpace(*name),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := client.DB().WithContext(ctx).Create(&user).Error; err != nil {
		logg.Error(ctx, "failed to create staff user", err)
		os.Exit(1)
	}

	fmt.Println("created staff user:", normalized)
}
