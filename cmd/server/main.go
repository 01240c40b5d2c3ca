package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/config"
	"github.com/iliyamo/social-feed-api/internal/database"
	"github.com/iliyamo/social-feed-api/internal/handler"
	"github.com/iliyamo/social-feed-api/internal/middleware"
	"github.com/iliyamo/social-feed-api/internal/queue"
	"github.com/iliyamo/social-feed-api/internal/repository"
	"github.com/iliyamo/social-feed-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and feed cache disabled")
	}

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)
	contacts := repository.NewContactRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	postH := handler.NewPostHandler(users, posts)
	contactH := handler.NewContactHandler(contacts)

	limiter := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)
	feedCache := middleware.NewFeedCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, authH, postH, contactH, cfg.JWTSecret, limiter, feedCache)

	go func() {
		if err := queue.StartPostCreatedConsumer(); err != nil {
			log.Printf("post consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
