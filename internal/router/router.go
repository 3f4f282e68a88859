package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/config"
	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/middleware"
)

// Handlers collects every route handler the API mounts.
type Handlers struct {
	Health   *api.HealthHandler
	Auth     *api.AuthHandler
	Recipe   *api.RecipeHandler
	AI       *api.AIHandler
	RAG      *api.RAGHandler
	Vision   *api.VisionHandler
	Voice    *api.VoiceHandler
	LiveCook *api.LiveCookHandler
}

// New assembles the gin engine with middleware and all API routes
// mounted under /api/v1.
func New(cfg *config.Config, auth middleware.TokenValidator, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	h.Health.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(v1)
		h.Recipe.RegisterRoutes(v1)
		h.RAG.RegisterRoutes(v1)
	}

	// AI-backed routes rate limit per user when a bearer token is
	// supplied, per client IP otherwise.
	ai := v1.Group("", middleware.OptionalAuthMiddleware(auth))
	{
		h.AI.RegisterRoutes(ai)
		h.Vision.RegisterRoutes(ai)
		h.Voice.RegisterRoutes(ai)
		h.LiveCook.RegisterRoutes(ai)
	}

	return r
}
