package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	dbfs "github.com/growcoach/jobboard/db"
	"github.com/growcoach/jobboard/internal/config"
	"github.com/growcoach/jobboard/internal/db"
	"github.com/growcoach/jobboard/internal/repository/sqlite"
	"github.com/growcoach/jobboard/pkg/models"
)

func main() {
	var (
		adminEmail    = flag.String("admin-email", "", "Bootstrap admin email (optional)")
		adminPassword = flag.String("admin-password", "", "Bootstrap admin password (required with -admin-email)")
	)
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if *adminEmail != "" {
		if *adminPassword == "" {
			fmt.Fprintln(os.Stderr, "-admin-password is required with -admin-email")
			os.Exit(1)
		}

		repo := sqlite.New(database, nil)
		existing, err := repo.GetAdminByEmail(ctx, *adminEmail)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Admin lookup error: %v\n", err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Println("Admin already exists, skipping bootstrap.")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Hash error: %v\n", err)
				os.Exit(1)
			}
			if _, err := repo.CreateAdmin(ctx, &models.Admin{
				Email:        *adminEmail,
				PasswordHash: string(hash),
				Role:         models.UserTypeAdmin,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "Admin create error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Admin account created.")
		}
	}

	fmt.Println("Database initialized successfully.")
}
