package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"modernblog/internal/config"
	"modernblog/internal/db"
	"modernblog/internal/model"
	"modernblog/internal/repository"
	"modernblog/internal/slug"
)

// seedAuthorExternalID marks the account sample content is attributed to.
const seedAuthorExternalID = "seed-author"

type seedPost struct {
	Title      string
	Content    string
	Excerpt    string
	Featured   bool
	Categories []string // category slugs
}

var seedCategories = []string{
	"Technology",
	"Web Development",
	"Design",
	"Tutorials",
}

var seedPosts = []seedPost{
	{
		Title:      "Getting Started with Modern Web Development",
		Content:    "Modern web development has evolved significantly over the past few years. In this post we walk through the tooling, frameworks and workflows that define how teams ship for the web today, and how to pick a stack that will still serve you in two years.",
		Excerpt:    "A practical tour of today's web development landscape.",
		Featured:   true,
		Categories: []string{"web-development", "tutorials"},
	},
	{
		Title:      "Designing Interfaces People Actually Use",
		Content:    "Good interface design is invisible. We look at the principles behind layouts that feel obvious, why consistency beats cleverness, and how to run lightweight usability checks without a dedicated research team.",
		Excerpt:    "Principles for interfaces that get out of the user's way.",
		Featured:   false,
		Categories: []string{"design"},
	},
	{
		Title:      "A Field Guide to API Versioning",
		Content:    "Every API eventually changes. This guide compares URL versioning, header negotiation and additive evolution, with concrete rules for when a change is breaking and how to retire old versions without stranding clients.",
		Excerpt:    "When to version, how to version, and how to stop.",
		Featured:   true,
		Categories: []string{"technology", "web-development"},
	},
	{
		Title:      "Caching Strategies for Read-Heavy Services",
		Content:    "Caches fail in interesting ways. We cover cache-aside versus write-through, choosing TTLs, invalidation on mutation, and the failure modes - stampedes, stale reads, silent drift - that bite read-heavy services in production.",
		Excerpt:    "Cache-aside, TTLs and the invalidation traps to avoid.",
		Featured:   false,
		Categories: []string{"technology"},
	},
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Contact{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	author, err := ensureSeedAuthor(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to ensure seed author: %v", err)
	}
	log.Printf("Seed author: %s", author.Email)

	categoriesBySlug, created, err := seedCategoryRows(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories: %d created, %d existing", created, len(categoriesBySlug)-created)

	posted, skipped, err := seedPostRows(ctx, postRepo, author.ID, categoriesBySlug)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Posts created: %d", posted)
	log.Printf("  - Posts skipped (already present): %d", skipped)
}

// ensureSeedAuthor finds or creates the user sample posts belong to.
func ensureSeedAuthor(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByExternalID(ctx, seedAuthorExternalID)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	username := "editorial"
	author := &model.User{
		ExternalID: seedAuthorExternalID,
		Email:      "editorial@modernblog.local",
		Username:   &username,
		Role:       model.RoleAdmin,
	}
	if err := repo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func seedCategoryRows(ctx context.Context, repo repository.CategoryRepository) (map[string]uuid.UUID, int, error) {
	bySlug := make(map[string]uuid.UUID, len(seedCategories))
	created := 0
	for _, name := range seedCategories {
		s := slug.Make(name)

		existing, err := repo.FindByNameOrSlug(ctx, name, s)
		if err == nil {
			bySlug[existing.Slug] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, created, fmt.Errorf("error checking category %q: %w", name, err)
		}

		category := &model.Category{Name: name, Slug: s}
		if err := repo.Create(ctx, category); err != nil {
			return nil, created, fmt.Errorf("error creating category %q: %w", name, err)
		}
		bySlug[category.Slug] = category.ID
		created++
	}
	return bySlug, created, nil
}

func seedPostRows(ctx context.Context, repo repository.PostRepository, authorID uuid.UUID, categories map[string]uuid.UUID) (posted int, skipped int, err error) {
	// Sample posts are matched by title so re-running the script stays idempotent.
	existing, _, err := repo.List(ctx, repository.PostFilter{Take: 1000})
	if err != nil {
		return 0, 0, fmt.Errorf("error listing posts: %w", err)
	}
	presentTitles := make(map[string]bool, len(existing))
	for _, p := range existing {
		presentTitles[p.Title] = true
	}

	for _, sp := range seedPosts {
		if presentTitles[sp.Title] {
			skipped++
			continue
		}

		categoryIDs := make([]uuid.UUID, 0, len(sp.Categories))
		for _, cs := range sp.Categories {
			id, ok := categories[cs]
			if !ok {
				return posted, skipped, fmt.Errorf("unknown category slug %q for post %q", cs, sp.Title)
			}
			categoryIDs = append(categoryIDs, id)
		}

		excerpt := sp.Excerpt
		post := &model.Post{
			Title:    sp.Title,
			Slug:     slug.Make(sp.Title),
			Content:  sp.Content,
			Excerpt:  &excerpt,
			Status:   model.PostStatusPublished,
			Featured: sp.Featured,
			AuthorID: authorID,
		}
		if err := repo.Create(ctx, post, categoryIDs); err != nil {
			return posted, skipped, fmt.Errorf("error creating post %q: %w", sp.Title, err)
		}
		posted++
	}
	return posted, skipped, nil
}
