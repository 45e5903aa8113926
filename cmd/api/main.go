package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platewise/recipehub/backend/config"
	"github.com/platewise/recipehub/backend/internal/database"
	"github.com/platewise/recipehub/backend/internal/router"
	"github.com/platewise/recipehub/backend/internal/server"
	"github.com/platewise/recipehub/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if !config.IsProduction() {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	svcs := router.Services{
		Auth:   service.NewAuthService(db, cfg.JWTSecret),
		Recipe: service.NewRecipeService(db),
		Share:  service.NewShareService(db),
	}

	// Redis is optional: without it AI calls are unthrottled and meal
	// plans uncached
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without it: %v", err)
	} else {
		svcs.Redis = redisClient
	}

	if cfg.AnthropicAPIKey != "" {
		llm, err := service.NewLLMService(cfg, redisClient)
		if err != nil {
			log.Fatalf("Failed to initialize LLM service: %v", err)
		}
		svcs.LLM = llm
	} else {
		log.Println("ANTHROPIC_API_KEY not set, AI endpoints disabled")
	}

	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		svcs.Image = service.NewImageService(s3cfg)
	} else {
		log.Println("S3_BUCKET_NAME not set, image uploads disabled")
	}

	engine := router.SetupRouter(cfg, db, svcs)
	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
