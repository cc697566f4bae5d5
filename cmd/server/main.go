package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/config"
	"github.com/iliyamo/soulful-cms/internal/database"
	"github.com/iliyamo/soulful-cms/internal/handler"
	"github.com/iliyamo/soulful-cms/internal/queue"
	"github.com/iliyamo/soulful-cms/internal/repository"
	"github.com/iliyamo/soulful-cms/internal/router"
	"github.com/iliyamo/soulful-cms/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	if err := database.SeedAdmin(ctx, db, cfg.AdminEmail, "Admin User", cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables caching and rate limiting
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	media, err := storage.NewMediaStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init media store: %v", err)
	}

	users := repository.NewUserRepo(db)
	blogs := repository.NewBlogRepo(db)

	auth := handler.NewAuthHandler(cfg, users)
	adminBlogs := handler.NewBlogHandler(blogs, users)
	publicBlogs := handler.NewPublicBlogHandler(blogs)
	stats := handler.NewStatsHandler(blogs, users)
	upload := handler.NewUploadHandler(media)
	contact := handler.NewContactHandler()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, publicBlogs, contact, rdb)
	router.RegisterAdmin(e, cfg, rdb, auth, adminBlogs, stats, upload)
	router.RegisterAdminPages(e, cfg)

	go func() {
		if err := queue.StartContentConsumer(); err != nil {
			log.Printf("content consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
