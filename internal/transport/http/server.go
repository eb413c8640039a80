package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"wavegram/internal/cache"
	"wavegram/internal/config"
	"wavegram/internal/database"
	"wavegram/internal/handler"
	appredis "wavegram/internal/redis"
	"wavegram/internal/repository"
	"wavegram/internal/service"
)

// Run loads configuration, connects the collaborators and serves the API.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Redis is optional: without it the follow-set cache layer is disabled
	// and every listFollowed resolves follows from the database.
	var followCache cache.FollowSet
	if cfg.RedisURL != "" {
		redisClient, err := appredis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		if err := redisClient.Ping(context.Background()); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		defer redisClient.Close()
		followCache = cache.NewFollowSet(redisClient.Client)
		log.Println("Follow-set cache enabled")
	} else {
		log.Println("REDIS_URL not set, follow-set cache disabled")
	}

	// Storage is optional too: photo endpoints answer 500 until configured.
	var mediaService *service.MediaService
	if cfg.S3BucketName != "" {
		mediaService, err = service.NewMediaService(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to create media service: %w", err)
		}
	} else {
		log.Println("S3 not configured, photo upload disabled")
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	userService := service.NewUserService(userRepo, followRepo, followCache, cfg)
	postService := service.NewPostService(postRepo, userRepo, followRepo, commentRepo, followCache, db)

	routerCfg := RouterConfig{
		UserHandler: handler.NewUserHandler(userService, mediaService),
		JWTSecret:   cfg.JWTSecret,
	}
	if mediaService != nil {
		routerCfg.PostHandler = handler.NewPostHandler(postService, mediaService)
		routerCfg.MediaHandler = handler.NewMediaHandler(mediaService)
	} else {
		routerCfg.PostHandler = handler.NewPostHandler(postService, nil)
	}

	router := NewRouter(routerCfg)

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
