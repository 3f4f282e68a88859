package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
)

const maxImageBytes = 20 * 1024 * 1024

// RecipeHandler serves the catalog, the ingredient-match suggestions and
// the user cookbook.
type RecipeHandler struct {
	recipes service.IRecipeService
	llm     service.ILLMService
	storage *service.StorageService
	auth    middleware.TokenValidator
}

func NewRecipeHandler(recipes service.IRecipeService, llm service.ILLMService, storage *service.StorageService, auth middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		llm:     llm,
		storage: storage,
		auth:    auth,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("/suggest", h.SuggestRecipes)
		recipes.GET("/cookbook", middleware.AuthMiddleware(h.auth), h.Cookbook)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/nutrition", h.RecipeNutrition)
		recipes.POST("/:id/save", middleware.AuthMiddleware(h.auth), h.SaveRecipe)
		recipes.DELETE("/:id/save", middleware.AuthMiddleware(h.auth), h.UnsaveRecipe)
		recipes.POST("/:id/image", middleware.AuthMiddleware(h.auth), h.UploadImage)
	}
	router.GET("/ingredients", h.ListIngredients)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), service.RecipeFilters{
		Cuisine:    c.Query("cuisine"),
		Difficulty: c.Query("difficulty"),
		Limit:      limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		summaries = append(summaries, toRecipeSummary(&recipes[i]))
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, toRecipeDetail(recipe))
}

// SuggestRecipes ranks catalog recipes against the user's ingredients.
// With ?use_ai=true the request is answered by the language model instead
// of the database matcher.
func (h *RecipeHandler) SuggestRecipes(c *gin.Context) {
	var input IngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Drop blank entries before the non-empty check so a list of
	// whitespace strings is rejected too.
	cleaned := make([]string, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if strings.TrimSpace(ing) != "" {
			cleaned = append(cleaned, ing)
		}
	}
	if len(cleaned) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide at least one ingredient"})
		return
	}

	if c.Query("use_ai") == "true" {
		h.suggestWithAI(c, cleaned, input)
		return
	}

	candidates, err := h.recipes.Candidates(c.Request.Context(), input.CuisinePreference, input.DietaryRestrictions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	suggestions := service.Rank(cleaned, candidates, input.MaxResults)

	c.JSON(http.StatusOK, SuggestionsResponse{
		Suggestions:          suggestions,
		Message:              fmt.Sprintf("Found %d recipes matching your %d ingredients!", len(suggestions), len(cleaned)),
		TotalRecipesSearched: len(candidates),
	})
}

func (h *RecipeHandler) suggestWithAI(c *gin.Context, ingredients []string, input IngredientInput) {
	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not configured"})
		return
	}

	context, err := h.recipes.RecentContext(c.Request.Context(), 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	result, err := h.llm.SuggestRecipes(c.Request.Context(), ingredients, input.DietaryRestrictions, input.CuisinePreference, context)
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

func (h *RecipeHandler) RecipeNutrition(c *gin.Context) {
	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	servings := recipe.Servings
	if servings <= 0 {
		servings = 4
	}
	estimate, err := h.llm.EstimateNutrition(c.Request.Context(), recipe.Name, recipe.Ingredients, servings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate nutrition"})
		return
	}

	c.JSON(http.StatusOK, NutritionResponse{
		Success:     true,
		PerServing:  &estimate.PerServing,
		HealthNotes: estimate.HealthNotes,
		Disclaimer:  estimate.Disclaimer,
	})
}

func (h *RecipeHandler) ListIngredients(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ingredients, err := h.recipes.ListIngredients(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}

	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recipes.SaveRecipe(c.Request.Context(), userID, recipeID, req.Rating, req.Notes); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe saved"})
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}

	if err := h.recipes.UnsaveRecipe(c.Request.Context(), userID, recipeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe removed"})
}

func (h *RecipeHandler) Cookbook(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	saved, err := h.recipes.SavedRecipes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cookbook"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_recipes": saved})
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image (JPEG, PNG, etc.)"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large. Maximum size is 20MB."})
		return
	}

	imageURL, err := h.storage.UploadRecipeImage(c.Request.Context(), recipeID, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	if err := h.recipes.SetImageURL(c.Request.Context(), recipeID, imageURL); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
