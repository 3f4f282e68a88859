package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/service"
)

// RAGHandler serves the vector index and retrieval-augmented suggestions.
type RAGHandler struct {
	rag service.IRAGService
}

func NewRAGHandler(rag service.IRAGService) *RAGHandler {
	return &RAGHandler{rag: rag}
}

func (h *RAGHandler) RegisterRoutes(router *gin.RouterGroup) {
	rag := router.Group("/rag")
	{
		rag.POST("/index", h.Index)
		rag.GET("/stats", h.Stats)
		rag.POST("/search", h.Search)
		rag.POST("/suggest", h.Suggest)
		rag.DELETE("/clear", h.Clear)
	}
}

func (h *RAGHandler) requireRAG(c *gin.Context) bool {
	if h.rag == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not configured"})
		return false
	}
	return true
}

func (h *RAGHandler) Index(c *gin.Context) {
	if !h.requireRAG(c) {
		return
	}

	indexed, err := h.rag.IndexAll(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoIndexedRecipes) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No recipes found in database"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to index recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"indexed_count": indexed,
	})
}

func (h *RAGHandler) Stats(c *gin.Context) {
	if !h.requireRAG(c) {
		return
	}

	stats, err := h.rag.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read index stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *RAGHandler) Search(c *gin.Context) {
	if !h.requireRAG(c) {
		return
	}

	var req SemanticSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.rag.Search(c.Request.Context(), req.Query, req.NResults, req.CuisineFilter, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   req.Query,
		"results": results,
		"count":   len(results),
	})
}

func (h *RAGHandler) Suggest(c *gin.Context) {
	if !h.requireRAG(c) {
		return
	}

	var req RAGSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, retrieved, err := h.rag.Suggest(c.Request.Context(), req.Query, req.Ingredients, req.DietaryRestrictions, req.CuisinePreference)
	if err != nil {
		if errors.Is(err, service.ErrNoIndexedRecipes) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No recipes indexed. Call POST /api/v1/rag/index first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "RAG service error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"data":              suggestions,
		"retrieved_recipes": retrieved,
	})
}

func (h *RAGHandler) Clear(c *gin.Context) {
	if !h.requireRAG(c) {
		return
	}

	deleted, err := h.rag.Clear(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear index"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": deleted})
}
