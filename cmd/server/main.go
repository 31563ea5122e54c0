package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "modernblog/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"modernblog/internal/authz"
	"modernblog/internal/cache"
	"modernblog/internal/config"
	"modernblog/internal/db"
	"modernblog/internal/handler"
	"modernblog/internal/identity"
	"modernblog/internal/model"
	"modernblog/internal/repository"
	"modernblog/internal/router"
	"modernblog/internal/service"
	"modernblog/internal/storage"
)

// @title Modern Blog API
// @version 1.0
// @description Blog/content-management API with posts, categories, users, media upload and a public contact form.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity provider token.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Contact{},
			&model.Post{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Contact{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	objectStore, err := storage.NewMinioClient(cfg)
	if err != nil {
		log.Fatalf("object storage init: %v", err)
	}
	ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := objectStore.EnsureBucket(ensureCtx); err != nil {
		log.Fatalf("object storage bucket: %v", err)
	}
	cancel()

	identityClient := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	authorizer := authz.New(userRepo)

	// Initialize services
	postService := service.NewPostService(postRepo, authorizer, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo, authorizer, cacheClient)
	userService := service.NewUserService(userRepo, postRepo, identityClient, authorizer)
	contactService := service.NewContactService(contactRepo, authorizer)
	mediaService := service.NewMediaService(objectStore, cfg.MediaBaseURL)

	// Initialize handlers
	postHandler := handler.NewPostHandler(postService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	userHandler := handler.NewUserHandler(userService)
	contactHandler := handler.NewContactHandler(contactService)
	uploadHandler := handler.NewUploadHandler(mediaService)
	searchHandler := handler.NewSearchHandler(postService)

	// Register routes
	router.Register(
		e,
		cfg,
		postHandler,
		categoryHandler,
		userHandler,
		contactHandler,
		uploadHandler,
		searchHandler,
	)

	// Log swagger full path
	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := cfg.SwaggerHost
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "http://" + host
		}
		swaggerURL = host + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
