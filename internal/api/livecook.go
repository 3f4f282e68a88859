package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
)

// LiveCookHandler serves real-time guidance during a cooking session.
type LiveCookHandler struct {
	livecook service.ILiveCookService
	limiter  *middleware.RateLimiter
}

func NewLiveCookHandler(livecook service.ILiveCookService, limiter *middleware.RateLimiter) *LiveCookHandler {
	return &LiveCookHandler{livecook: livecook, limiter: limiter}
}

func (h *LiveCookHandler) RegisterRoutes(router *gin.RouterGroup) {
	live := router.Group("/live-cook")
	if h.limiter != nil {
		live.Use(h.limiter.RateLimitMiddleware())
	}
	{
		live.POST("/analyze", h.Analyze)
		live.POST("/voice-command", h.VoiceCommand)
		live.POST("/ingredient-help", h.IngredientHelp)
		live.POST("/timing-help", h.TimingHelp)
	}
}

func (h *LiveCookHandler) requireLiveCook(c *gin.Context) bool {
	if h.livecook == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not configured"})
		return false
	}
	return true
}

func (h *LiveCookHandler) Analyze(c *gin.Context) {
	if !h.requireLiveCook(c) {
		return
	}

	var req FrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.livecook.AnalyzeFrame(c.Request.Context(), req.ImageBase64, req.RecipeName, req.CurrentStep, req.CurrentInstruction, req.DetectedIngredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze frame"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func (h *LiveCookHandler) VoiceCommand(c *gin.Context) {
	if !h.requireLiveCook(c) {
		return
	}

	var req VoiceCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.livecook.VoiceCommand(c.Request.Context(), req.Command, req.RecipeName, req.CurrentStep, req.CurrentInstruction, req.DetectedIngredients, req.LastAnalysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process command"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"response":        result.Response,
		"action":          result.Action,
		"additional_info": result.AdditionalInfo,
	})
}

func (h *LiveCookHandler) IngredientHelp(c *gin.Context) {
	if !h.requireLiveCook(c) {
		return
	}

	var req IngredientHelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.livecook.IngredientHelp(c.Request.Context(), req.Ingredient, req.RecipeName, req.RecipeIngredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ingredient help"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": response})
}

func (h *LiveCookHandler) TimingHelp(c *gin.Context) {
	if !h.requireLiveCook(c) {
		return
	}

	var req TimingHelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.livecook.TimingHelp(c.Request.Context(), req.Action, req.CurrentInstruction, req.VisualContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get timing help"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": response})
}
