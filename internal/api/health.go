package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/service"
)

// HealthHandler reports service liveness and which subsystems are available.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	ai    *service.OpenAIClient
	rag   service.IRAGService
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, ai *service.OpenAIClient, rag service.IRAGService) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, ai: ai, rag: rag}
}

func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Pantry Chef API is running!",
		"version": "2.0.0",
		"docs":    "/health",
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"

	dbStatus := "connected"
	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		dbStatus = "unavailable"
		status = "degraded"
	}

	redisStatus := "connected"
	if h.redis == nil {
		redisStatus = "not configured"
	} else if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		redisStatus = "unavailable"
	}

	aiStatus := "not configured"
	if h.ai != nil {
		aiStatus = "configured"
	}

	var indexedRecipes int64
	if h.rag != nil {
		if stats, err := h.rag.Stats(c.Request.Context()); err == nil {
			indexedRecipes = stats.IndexedRecipes
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":          status,
		"database":        dbStatus,
		"redis":           redisStatus,
		"ai_service":      aiStatus,
		"indexed_recipes": indexedRecipes,
	})
}
