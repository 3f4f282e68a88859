package main

import (
	"context"
	"log"

	"github.com/pantrychef/backend/config"
	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/router"
	"github.com/pantrychef/backend/internal/server"
	"github.com/pantrychef/backend/internal/service"
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
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// The API stays up without an OpenAI key; AI-backed endpoints
	// respond 503 until one is configured.
	ai, err := service.NewOpenAIClient()
	if err != nil {
		log.Printf("OpenAI client not configured: %v", err)
		ai = nil
	}

	var storage *service.StorageService
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 storage not configured: %v", err)
	} else {
		storage = service.NewStorageService(s3Cfg)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db)

	var (
		llmService      *service.LLMService
		ragService      *service.RAGService
		visionService   *service.VisionService
		voiceService    *service.VoiceService
		liveCookService *service.LiveCookService
	)
	if ai != nil {
		llmService = service.NewLLMService(ai, redisClient)
		ragService = service.NewRAGService(db, ai)
		visionService = service.NewVisionService(ai)
		voiceService = service.NewVoiceService(ai, ragService)
		liveCookService = service.NewLiveCookService(ai)
	}

	limiter := middleware.NewAIRateLimiter(redisClient)

	r := router.New(cfg, authService, router.Handlers{
		Health:   api.NewHealthHandler(db, redisClient, ai, ragOrNil(ragService)),
		Auth:     api.NewAuthHandler(authService, profileService),
		Recipe:   api.NewRecipeHandler(recipeService, llmOrNil(llmService), storage, authService),
		AI:       api.NewAIHandler(llmOrNil(llmService), recipeService, limiter),
		RAG:      api.NewRAGHandler(ragOrNil(ragService)),
		Vision:   api.NewVisionHandler(visionOrNil(visionService), limiter),
		Voice:    api.NewVoiceHandler(voiceOrNil(voiceService), limiter),
		LiveCook: api.NewLiveCookHandler(liveCookOrNil(liveCookService), limiter),
	})

	srv := server.New(r)
	if err := srv.Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

// A nil *LLMService stored directly in an ILLMService interface would not
// compare equal to nil inside the handlers, so map typed nils to untyped
// ones here.
func llmOrNil(s *service.LLMService) service.ILLMService {
	if s == nil {
		return nil
	}
	return s
}

func ragOrNil(s *service.RAGService) service.IRAGService {
	if s == nil {
		return nil
	}
	return s
}

func visionOrNil(s *service.VisionService) service.IVisionService {
	if s == nil {
		return nil
	}
	return s
}

func voiceOrNil(s *service.VoiceService) service.IVoiceService {
	if s == nil {
		return nil
	}
	return s
}

func liveCookOrNil(s *service.LiveCookService) service.ILiveCookService {
	if s == nil {
		return nil
	}
	return s
}
