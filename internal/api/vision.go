package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
)

// VisionHandler serves ingredient detection from photos.
type VisionHandler struct {
	vision  service.IVisionService
	limiter *middleware.RateLimiter
}

func NewVisionHandler(vision service.IVisionService, limiter *middleware.RateLimiter) *VisionHandler {
	return &VisionHandler{vision: vision, limiter: limiter}
}

func (h *VisionHandler) RegisterRoutes(router *gin.RouterGroup) {
	vision := router.Group("/vision")
	if h.limiter != nil {
		vision.Use(h.limiter.RateLimitMiddleware())
	}
	{
		vision.POST("/analyze", h.Analyze)
		vision.POST("/analyze-base64", h.AnalyzeBase64)
		vision.POST("/analyze-url", h.AnalyzeURL)
		vision.POST("/analyze-fast", h.AnalyzeFast)
		vision.POST("/analyze-detailed", h.AnalyzeDetailed)
	}
}

func (h *VisionHandler) requireVision(c *gin.Context) bool {
	if h.vision == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Vision service not configured"})
		return false
	}
	return true
}

// readImageUpload validates and reads the multipart "file" field. Returns
// nil after writing the error response when validation fails.
func readImageUpload(c *gin.Context) []byte {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return nil
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image (JPEG, PNG, etc.)"})
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return nil
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large. Maximum size is 20MB."})
		return nil
	}
	return data
}

func (h *VisionHandler) Analyze(c *gin.Context) {
	if !h.requireVision(c) {
		return
	}

	data := readImageUpload(c)
	if data == nil {
		return
	}

	analysis, err := h.vision.AnalyzeImage(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusOK, VisionResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toVisionResponse(analysis, ""))
}

func (h *VisionHandler) AnalyzeBase64(c *gin.Context) {
	if !h.requireVision(c) {
		return
	}

	var req Base64ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image data provided"})
		return
	}

	analysis, err := h.vision.AnalyzeBase64(c.Request.Context(), req.ImageData)
	if err != nil {
		c.JSON(http.StatusOK, VisionResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toVisionResponse(analysis, ""))
}

func (h *VisionHandler) AnalyzeURL(c *gin.Context) {
	if !h.requireVision(c) {
		return
	}

	var req ImageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.vision.AnalyzeURL(c.Request.Context(), req.ImageURL)
	if err != nil {
		c.JSON(http.StatusOK, VisionResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toVisionResponse(analysis, ""))
}

func (h *VisionHandler) AnalyzeFast(c *gin.Context) {
	if !h.requireVision(c) {
		return
	}

	data := readImageUpload(c)
	if data == nil {
		return
	}

	analysis, err := h.vision.AnalyzeFast(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusOK, VisionResponse{Success: false, Error: err.Error(), Mode: "fast"})
		return
	}
	c.JSON(http.StatusOK, toVisionResponse(analysis, "fast"))
}

func (h *VisionHandler) AnalyzeDetailed(c *gin.Context) {
	if !h.requireVision(c) {
		return
	}

	data := readImageUpload(c)
	if data == nil {
		return
	}

	var focusAreas []string
	if focus := c.PostForm("focus_areas"); focus != "" {
		for _, area := range strings.Split(focus, ",") {
			if area = strings.TrimSpace(area); area != "" {
				focusAreas = append(focusAreas, area)
			}
		}
	}

	analysis, err := h.vision.AnalyzeDetailed(c.Request.Context(), data, focusAreas)
	if err != nil {
		c.JSON(http.StatusOK, VisionResponse{Success: false, Error: err.Error(), Mode: "detailed"})
		return
	}
	c.JSON(http.StatusOK, toVisionResponse(analysis, "detailed"))
}
