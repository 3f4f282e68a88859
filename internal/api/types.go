package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/model"
	"github.com/pantrychef/backend/internal/service"
)

// IngredientInput is the body of a suggestion request.
type IngredientInput struct {
	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreference   string   `json:"cuisine_preference"`
	MaxResults          int      `json:"max_results"`
}

// SuggestionsResponse is the ranked output of the ingredient matcher.
type SuggestionsResponse struct {
	Suggestions          []service.MatchResult `json:"suggestions"`
	Message              string                `json:"message"`
	TotalRecipesSearched int                   `json:"total_recipes_searched"`
}

// RecipeSummary is the compact listing shape.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cuisine     string    `json:"cuisine"`
	Difficulty  string    `json:"difficulty"`
	TotalTime   string    `json:"total_time"`
	DietaryTags []string  `json:"dietary_tags"`
	ImageURL    string    `json:"image_url"`
}

// RecipeDetail is the full recipe shape.
type RecipeDetail struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Cuisine         string    `json:"cuisine"`
	Difficulty      string    `json:"difficulty"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	TotalTime       string    `json:"total_time"`
	Servings        int       `json:"servings"`
	DietaryTags     []string  `json:"dietary_tags"`
	Ingredients     []string  `json:"ingredients"`
	Instructions    []string  `json:"instructions"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func toRecipeSummary(r *model.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Cuisine:     r.Cuisine,
		Difficulty:  r.Difficulty,
		TotalTime:   r.TotalTime(),
		DietaryTags: r.DietaryTags,
		ImageURL:    r.ImageURL,
	}
}

func toRecipeDetail(r *model.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Cuisine:         r.Cuisine,
		Difficulty:      r.Difficulty,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		TotalTime:       r.TotalTime(),
		Servings:        r.Servings,
		DietaryTags:     r.DietaryTags,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
		ImageURL:        r.ImageURL,
		CreatedAt:       r.CreatedAt,
	}
}

// RegisterRequest is the signup body.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required,min=3,max=50"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SaveRecipeRequest is the cookbook save body.
type SaveRecipeRequest struct {
	Rating int    `json:"rating" binding:"min=0,max=5"`
	Notes  string `json:"notes"`
}

// AIRecipeRequest asks the model for creative suggestions.
type AIRecipeRequest struct {
	Ingredients         []string `json:"ingredients" binding:"required"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreference   string   `json:"cuisine_preference"`
}

// AIRecipeResponse carries AI-generated suggestions.
type AIRecipeResponse struct {
	Suggestions []service.AISuggestion `json:"suggestions"`
	ChefNote    string                 `json:"chef_note"`
	AIPowered   bool                   `json:"ai_powered"`
}

// ChatRequest is one chat turn with optional history.
type ChatRequest struct {
	Message             string                `json:"message" binding:"required"`
	ConversationHistory []service.ChatMessage `json:"conversation_history"`
}

// ChatResponse is the model's reply.
type ChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
}

// NutritionRequest asks for a macro estimate.
type NutritionRequest struct {
	RecipeName  string   `json:"recipe_name" binding:"required"`
	Ingredients []string `json:"ingredients" binding:"required"`
	Servings    int      `json:"servings"`
}

// NutritionResponse carries the estimate.
type NutritionResponse struct {
	Success     bool                        `json:"success"`
	PerServing  *service.NutritionPerServing `json:"per_serving,omitempty"`
	HealthNotes []string                    `json:"health_notes"`
	Disclaimer  string                      `json:"disclaimer"`
	Error       string                      `json:"error,omitempty"`
}

// SemanticSearchRequest is a meaning-based catalog search.
type SemanticSearchRequest struct {
	Query         string `json:"query" binding:"required"`
	NResults      int    `json:"n_results"`
	CuisineFilter string `json:"cuisine_filter"`
}

// RAGSearchRequest asks for retrieval-grounded suggestions.
type RAGSearchRequest struct {
	Query               string   `json:"query" binding:"required"`
	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreference   string   `json:"cuisine_preference"`
}

// ImageURLRequest analyzes an image by URL.
type ImageURLRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

// Base64ImageRequest analyzes an in-memory image.
type Base64ImageRequest struct {
	ImageData string `json:"image_data" binding:"required"`
}

// VisionResponse is the ingredient-detection result.
type VisionResponse struct {
	Success         bool                         `json:"success"`
	Ingredients     []service.DetectedIngredient `json:"ingredients"`
	IngredientNames []string                     `json:"ingredient_names"`
	TotalCount      int                          `json:"total_count"`
	AreasChecked    []string                     `json:"areas_checked,omitempty"`
	Summary         string                       `json:"summary"`
	MealPotential   string                       `json:"meal_potential,omitempty"`
	Notes           string                       `json:"notes,omitempty"`
	Mode            string                       `json:"mode,omitempty"`
	Error           string                       `json:"error,omitempty"`
}

func toVisionResponse(analysis *service.VisionAnalysis, mode string) VisionResponse {
	return VisionResponse{
		Success:         true,
		Ingredients:     analysis.Ingredients,
		IngredientNames: analysis.IngredientNames,
		TotalCount:      analysis.TotalCount,
		AreasChecked:    analysis.AreasChecked,
		Summary:         analysis.Summary,
		MealPotential:   analysis.MealPotential,
		Notes:           analysis.Notes,
		Mode:            mode,
	}
}

// SpeakRequest converts text to audio.
type SpeakRequest struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"`
}

// VoiceChatRequest is one spoken conversation turn.
type VoiceChatRequest struct {
	Message             string                 `json:"message" binding:"required"`
	ConversationHistory []service.ChatMessage  `json:"conversation_history"`
	DetectedIngredients []string               `json:"detected_ingredients"`
	CurrentRecipe       *service.CurrentRecipe `json:"current_recipe"`
}

// GreetRequest opens a voice session from detected ingredients.
// GenerateAudio defaults to true when omitted.
type GreetRequest struct {
	Ingredients   []string `json:"ingredients" binding:"required"`
	GenerateAudio *bool    `json:"generate_audio"`
}

// VoiceResponse is the common voice reply shape: text plus optional
// synthesized audio.
type VoiceResponse struct {
	Success      bool   `json:"success"`
	TextResponse string `json:"text_response"`
	AudioBase64  string `json:"audio_base64,omitempty"`
	Error        string `json:"error,omitempty"`
}

// VoiceSuggestRequest asks for a spoken recipe recommendation.
type VoiceSuggestRequest struct {
	Ingredients         []string `json:"ingredients" binding:"required"`
	CuisinePreference   string   `json:"cuisine_preference"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	TimeConstraint      string   `json:"time_constraint"`
	GenerateAudio       *bool    `json:"generate_audio"`
}

// CookingStepRequest asks for spoken step guidance.
type CookingStepRequest struct {
	RecipeName      string `json:"recipe_name" binding:"required"`
	CurrentStep     int    `json:"current_step" binding:"required"`
	TotalSteps      int    `json:"total_steps" binding:"required"`
	StepInstruction string `json:"step_instruction" binding:"required"`
	UserQuestion    string `json:"user_question"`
	GenerateAudio   *bool  `json:"generate_audio"`
}

// FrameRequest analyzes a live camera frame.
type FrameRequest struct {
	ImageBase64         string   `json:"image_base64" binding:"required"`
	RecipeName          string   `json:"recipe_name" binding:"required"`
	CurrentStep         int      `json:"current_step"`
	CurrentInstruction  string   `json:"current_instruction"`
	DetectedIngredients []string `json:"detected_ingredients"`
}

// VoiceCommandRequest handles a spoken command mid-cook.
type VoiceCommandRequest struct {
	Command             string                 `json:"command" binding:"required"`
	RecipeName          string                 `json:"recipe_name" binding:"required"`
	CurrentStep         int                    `json:"current_step"`
	CurrentInstruction  string                 `json:"current_instruction"`
	DetectedIngredients []string               `json:"detected_ingredients"`
	LastAnalysis        *service.FrameAnalysis `json:"last_analysis"`
}

// IngredientHelpRequest asks how much of an ingredient to use.
type IngredientHelpRequest struct {
	Ingredient        string                           `json:"ingredient" binding:"required"`
	RecipeName        string                           `json:"recipe_name" binding:"required"`
	RecipeIngredients []service.RecipeIngredientAmount `json:"recipe_ingredients"`
}

// TimingHelpRequest asks how long a cooking action takes.
type TimingHelpRequest struct {
	Action             string `json:"action" binding:"required"`
	CurrentInstruction string `json:"current_instruction" binding:"required"`
	VisualContext      string `json:"visual_context"`
}
