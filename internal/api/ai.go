package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
)

// AIHandler serves the language-model endpoints: creative suggestions,
// chef chat and nutrition estimates.
type AIHandler struct {
	llm     service.ILLMService
	recipes service.IRecipeService
	limiter *middleware.RateLimiter
}

func NewAIHandler(llm service.ILLMService, recipes service.IRecipeService, limiter *middleware.RateLimiter) *AIHandler {
	return &AIHandler{
		llm:     llm,
		recipes: recipes,
		limiter: limiter,
	}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	if h.limiter != nil {
		ai.Use(h.limiter.RateLimitMiddleware())
	}
	{
		ai.POST("/suggest", h.Suggest)
		ai.POST("/chat", h.Chat)
		ai.GET("/test", h.Test)
	}

	nutrition := router.Group("/nutrition")
	if h.limiter != nil {
		nutrition.Use(h.limiter.RateLimitMiddleware())
	}
	nutrition.POST("/estimate", h.EstimateNutrition)

	// Registered outside the limited groups so checking the quota does
	// not consume it.
	router.GET("/ai/limit", h.RateLimitStatus)
}

// RateLimitStatus reports the caller's remaining AI request quota for the
// current window, keyed the same way the limiter keys requests.
func (h *AIHandler) RateLimitStatus(c *gin.Context) {
	if h.limiter == nil {
		c.JSON(http.StatusOK, gin.H{"limited": false})
		return
	}

	caller := c.ClientIP()
	if userID, exists := c.Get("user_id"); exists {
		caller = fmt.Sprintf("%v", userID)
	}

	remaining, resetTime, err := h.limiter.GetRemainingRequests(c.Request.Context(), caller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"limited":   true,
		"remaining": remaining,
		"reset":     resetTime.Unix(),
	})
}

func (h *AIHandler) requireAI(c *gin.Context) bool {
	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not configured"})
		return false
	}
	return true
}

func (h *AIHandler) Suggest(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}

	var req AIRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	context, err := h.recipes.RecentContext(c.Request.Context(), 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	result, err := h.llm.SuggestRecipes(c.Request.Context(), req.Ingredients, req.DietaryRestrictions, req.CuisinePreference, context)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, AIRecipeResponse{
		Suggestions: result.Suggestions,
		ChefNote:    result.ChefNote,
		AIPowered:   true,
	})
}

func (h *AIHandler) Chat(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.llm.Chat(c.Request.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Response: response, Success: true})
}

func (h *AIHandler) Test(c *gin.Context) {
	if h.llm == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "AI service not configured"})
		return
	}

	message, err := h.llm.TestConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func (h *AIHandler) EstimateNutrition(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}

	var req NutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := h.llm.EstimateNutrition(c.Request.Context(), req.RecipeName, req.Ingredients, req.Servings)
	if err != nil {
		c.JSON(http.StatusOK, NutritionResponse{Success: false, Error: "Failed to estimate nutrition"})
		return
	}

	c.JSON(http.StatusOK, NutritionResponse{
		Success:     true,
		PerServing:  &estimate.PerServing,
		HealthNotes: estimate.HealthNotes,
		Disclaimer:  estimate.Disclaimer,
	})
}
