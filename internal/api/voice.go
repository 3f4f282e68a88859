package api

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
)

const maxAudioBytes = 25 * 1024 * 1024

// VoiceHandler serves hands-free cooking assistance.
type VoiceHandler struct {
	voice   service.IVoiceService
	limiter *middleware.RateLimiter
}

func NewVoiceHandler(voice service.IVoiceService, limiter *middleware.RateLimiter) *VoiceHandler {
	return &VoiceHandler{voice: voice, limiter: limiter}
}

func (h *VoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	voice := router.Group("/voice")
	if h.limiter != nil {
		voice.Use(h.limiter.RateLimitMiddleware())
	}
	{
		voice.POST("/transcribe", h.Transcribe)
		voice.POST("/speak", h.Speak)
		voice.POST("/chat", h.Chat)
		voice.POST("/greet-ingredients", h.Greet)
		voice.POST("/suggest-recipe", h.Suggest)
		voice.POST("/cooking-step", h.CookingStep)
	}
}

func (h *VoiceHandler) requireVoice(c *gin.Context) bool {
	if h.voice == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Voice service not configured"})
		return false
	}
	return true
}

// speakOrEmpty synthesizes audio for a reply, returning empty audio on
// synthesis failure so the text still reaches the caller.
func (h *VoiceHandler) speakOrEmpty(c *gin.Context, text string) string {
	audio, err := h.voice.Speak(c.Request.Context(), text, "")
	if err != nil {
		log.Printf("[VoiceHandler] Speech synthesis failed: %v", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(audio)
}

func wantAudio(flag *bool) bool {
	return flag == nil || *flag
}

func (h *VoiceHandler) Transcribe(c *gin.Context) {
	if !h.requireVoice(c) {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	defer file.Close()

	format := "webm"
	if header.Filename != "" {
		if idx := strings.LastIndex(header.Filename, "."); idx >= 0 {
			format = header.Filename[idx+1:]
		}
	}

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio"})
		return
	}
	if len(audio) > maxAudioBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio too large. Maximum size is 25MB."})
		return
	}

	text, err := h.voice.Transcribe(c.Request.Context(), audio, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transcribe audio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "text": text})
}

func (h *VoiceHandler) Speak(c *gin.Context) {
	if !h.requireVoice(c) {
		return
	}

	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := h.voice.Speak(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate speech"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"audio_base64": base64.StdEncoding.EncodeToString(audio),
		"format":       "mp3",
	})
}

func (h *VoiceHandler) Chat(c *gin.Context) {
	if !h.requireVoice(c) {
		return
	}

	var req VoiceChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.voice.Chat(c.Request.Context(), req.Message, req.ConversationHistory, req.DetectedIngredients, req.CurrentRecipe)
	if err != nil {
		c.JSON(http.StatusOK, VoiceResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, VoiceResponse{
		Success:      true,
		TextResponse: result.Response,
		AudioBase64:  h.speakOrEmpty(c, result.Response),
	})
}

func (h *VoiceHandler) Greet(c *gin.Context) {
	if !h.requireVoice(c) {
		return
	}

	var req GreetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.voice.Greet(c.Request.Context(), req.Ingredients)
	if err != nil {
		c.JSON(http.StatusOK, VoiceResponse{Success: false, Error: err.Error()})
		return
	}

	resp := VoiceResponse{Success: true, TextResponse: text}
	if wantAudio(req.GenerateAudio) {
		resp.AudioBase64 = h.speakOrEmpty(c, text)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoiceHandler) Suggest(c *gin.Context) {
	if !h.requireVoice(c) {
		return
	}

	var req VoiceSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.voice.Suggest(c.Request.Context(), req.Ingredients, req.CuisinePreference, req.DietaryRestrictions, req.TimeConstraint)
	if err != nil {
		c.JSON(http.StatusOK, VoiceResponse{Success: false, Error: err.Error()})
		return
	}

	resp := VoiceResponse{Success: true, TextResponse: result.Response}
	if wantAudio(req.GenerateAudio) {
		resp.AudioBase64 = h.speakOrEmpty(c, result.Response)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoiceHandler) CookingStep(c *gin.Context) {
	if !h.requireVoice(c) {
		return
	}

	var req CookingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.voice.CookingStep(c.Request.Context(), req.RecipeName, req.CurrentStep, req.TotalSteps, req.StepInstruction, req.UserQuestion)
	if err != nil {
		c.JSON(http.StatusOK, VoiceResponse{Success: false, Error: err.Error()})
		return
	}

	resp := VoiceResponse{Success: true, TextResponse: text}
	if wantAudio(req.GenerateAudio) {
		resp.AudioBase64 = h.speakOrEmpty(c, text)
	}
	c.JSON(http.StatusOK, resp)
}
