package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/model"
	"github.com/pantrychef/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(email, username, displayName, password string) (string, error)
	Login(email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error)
}

// IRecipeService defines the interface for catalog and cookbook operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, filters RecipeFilters) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	Candidates(ctx context.Context, cuisine string, dietaryRestrictions []string) ([]RecipeCandidate, error)
	RecentContext(ctx context.Context, n int) ([]RecipeContext, error)
	ListIngredients(ctx context.Context, search string, limit int) ([]model.Ingredient, error)
	SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID, rating int, notes string) error
	UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	SavedRecipes(ctx context.Context, userID uuid.UUID) ([]model.SavedRecipe, error)
	SetImageURL(ctx context.Context, recipeID uuid.UUID, imageURL string) error
}

// ILLMService defines the interface for AI suggestion operations
type ILLMService interface {
	SuggestRecipes(ctx context.Context, ingredients, dietaryRestrictions []string, cuisinePreference string, existing []RecipeContext) (*AISuggestionsResult, error)
	Chat(ctx context.Context, message string, history []ChatMessage) (string, error)
	TestConnection(ctx context.Context) (string, error)
	EstimateNutrition(ctx context.Context, recipeName string, ingredients []string, servings int) (*NutritionEstimate, error)
}

// IRAGService defines the interface for retrieval operations
type IRAGService interface {
	IndexAll(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*IndexStats, error)
	Clear(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string, nResults int, cuisineFilter string, dietaryFilter []string) ([]SemanticResult, error)
	Suggest(ctx context.Context, query string, ingredients, dietaryRestrictions []string, cuisinePreference string) (*RAGSuggestions, int, error)
}

// IVisionService defines the interface for image analysis operations
type IVisionService interface {
	AnalyzeImage(ctx context.Context, imageData []byte) (*VisionAnalysis, error)
	AnalyzeBase64(ctx context.Context, encoded string) (*VisionAnalysis, error)
	AnalyzeURL(ctx context.Context, imageURL string) (*VisionAnalysis, error)
	AnalyzeFast(ctx context.Context, imageData []byte) (*VisionAnalysis, error)
	AnalyzeDetailed(ctx context.Context, imageData []byte, focusAreas []string) (*VisionAnalysis, error)
}

// IVoiceService defines the interface for voice operations
type IVoiceService interface {
	Transcribe(ctx context.Context, audio []byte, format string) (string, error)
	Speak(ctx context.Context, text string, voice string) ([]byte, error)
	Chat(ctx context.Context, message string, history []ChatMessage, detectedIngredients []string, currentRecipe *CurrentRecipe) (*VoiceChatResult, error)
	Greet(ctx context.Context, ingredients []string) (string, error)
	Suggest(ctx context.Context, ingredients []string, cuisinePreference string, dietaryRestrictions []string, timeConstraint string) (*VoiceSuggestResult, error)
	CookingStep(ctx context.Context, recipeName string, currentStep, totalSteps int, stepInstruction, userQuestion string) (string, error)
}

// ILiveCookService defines the interface for live cooking operations
type ILiveCookService interface {
	AnalyzeFrame(ctx context.Context, imageBase64, recipeName string, currentStep int, currentInstruction string, detectedIngredients []string) (*FrameAnalysis, error)
	VoiceCommand(ctx context.Context, command, recipeName string, currentStep int, currentInstruction string, detectedIngredients []string, lastAnalysis *FrameAnalysis) (*CommandResult, error)
	IngredientHelp(ctx context.Context, ingredient, recipeName string, recipeIngredients []RecipeIngredientAmount) (string, error)
	TimingHelp(ctx context.Context, action, currentInstruction, visualContext string) (string, error)
}
