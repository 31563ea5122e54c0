package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"modernblog/internal/config"
	"modernblog/internal/db"
	"modernblog/internal/identity"
	"modernblog/internal/model"
	"modernblog/internal/repository"
	"modernblog/internal/service"
)

func main() {
	log.Println("Starting user sync...")

	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.IdentityAPIKey == "" {
		log.Fatal("IDENTITY_API_KEY is required for the sync job")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	directory := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey)

	// The CLI runs with operator credentials, so no authorizer is wired.
	userService := service.NewUserService(userRepo, postRepo, directory, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	synced, err := userService.SyncFromProvider(ctx)
	if err != nil {
		log.Fatalf("User sync failed: %v", err)
	}

	log.Printf("User sync completed: %d users upserted", synced)
}
