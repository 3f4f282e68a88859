package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
)

const chefSystemPrompt = `You are "Chef Pantry", a friendly and knowledgeable home cooking assistant.

Your expertise includes suggesting recipes from available ingredients, adapting recipes for dietary restrictions, explaining cooking techniques and recommending substitutions for missing ingredients.

Guidelines:
- Always consider food safety and common allergens
- Keep recipes realistic for home cooks
- Suggest reasonable substitutions when ingredients are missing
- Be warm and encouraging`

// AISuggestion is one creative recipe idea from the model.
type AISuggestion struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	UsesIngredients  []string `json:"uses_ingredients"`
	AdditionalNeeded []string `json:"additional_needed"`
	CookingTime      string   `json:"cooking_time"`
	Difficulty       string   `json:"difficulty"`
	Tip              string   `json:"tip"`
	Cuisine          string   `json:"cuisine"`
}

// AISuggestionsResult is the parsed JSON payload from a suggestion call.
type AISuggestionsResult struct {
	Suggestions []AISuggestion `json:"suggestions"`
	ChefNote    string         `json:"chef_note"`
}

// ChatMessage is one turn of a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NutritionPerServing holds estimated macros for one serving.
type NutritionPerServing struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
}

// NutritionEstimate is the parsed nutrition payload from the model.
type NutritionEstimate struct {
	PerServing  NutritionPerServing `json:"per_serving"`
	HealthNotes []string            `json:"health_notes"`
	Disclaimer  string              `json:"disclaimer"`
}

// RecipeContext is a compact catalog summary fed to the model so its
// suggestions stay aware of what the database already holds.
type RecipeContext struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cuisine     string `json:"cuisine"`
}

// LLMService produces AI recipe suggestions, chat replies and nutrition
// estimates, caching suggestion responses in Redis.
type LLMService struct {
	ai    *OpenAIClient
	redis *redis.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(ai *OpenAIClient, redisClient *redis.Client) *LLMService {
	return &LLMService{ai: ai, redis: redisClient}
}

// SuggestRecipes asks the model for creative recipe ideas based on the
// user's ingredients. Identical requests are served from cache for an hour.
func (s *LLMService) SuggestRecipes(ctx context.Context, ingredients, dietaryRestrictions []string, cuisinePreference string, existing []RecipeContext) (*AISuggestionsResult, error) {
	cacheKey := suggestionCacheKey(ingredients, dietaryRestrictions, cuisinePreference)
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached AISuggestionsResult
			if err := json.Unmarshal(data, &cached); err == nil {
				log.Printf("[LLMService] Cache hit for suggestion request")
				return &cached, nil
			}
		}
	}

	var contextLines []string
	for i, r := range existing {
		if i >= 5 {
			break
		}
		desc := truncateRunes(r.Description, 100)
		contextLines = append(contextLines, fmt.Sprintf("- %s: %s", r.Name, desc))
	}
	recipeContext := "None provided"
	if len(contextLines) > 0 {
		recipeContext = strings.Join(contextLines, "\n")
	}

	restrictions := "None"
	if len(dietaryRestrictions) > 0 {
		restrictions = strings.Join(dietaryRestrictions, ", ")
	}
	cuisine := "Any"
	if cuisinePreference != "" {
		cuisine = cuisinePreference
	}

	prompt := fmt.Sprintf(`Suggest 3 creative recipes the user can make.

Available ingredients: %s
Dietary restrictions: %s
Cuisine preference: %s
Existing recipes in the catalog (for reference): %s

Respond as JSON:
{
    "suggestions": [
        {
            "name": "Recipe Name",
            "description": "Brief appetizing description",
            "uses_ingredients": ["ingredient1", "ingredient2"],
            "additional_needed": ["item1", "item2"],
            "cooking_time": "30 minutes",
            "difficulty": "Easy",
            "tip": "Pro tip or variation idea",
            "cuisine": "Italian"
        }
    ],
    "chef_note": "A friendly message about their ingredient selection"
}

Keep the additional_needed lists minimal and suggest substitutions for missing staples.`,
		strings.Join(ingredients, ", "), restrictions, cuisine, recipeContext)

	content, err := s.ai.ChatJSON(ctx, ChatModel, chefSystemPrompt, prompt, 0.7)
	if err != nil {
		return nil, err
	}

	var result AISuggestionsResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if result.ChefNote == "" {
		result.ChefNote = "Here are some ideas for you!"
	}

	if s.redis != nil {
		if data, err := json.Marshal(&result); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, time.Hour).Err(); err != nil {
				log.Printf("[LLMService] Failed to cache suggestions: %v", err)
			}
		}
	}

	return &result, nil
}

// Chat holds a conversation with the chef persona. Only the last ten turns
// of history are forwarded to keep the prompt bounded.
func (s *LLMService) Chat(ctx context.Context, message string, history []ChatMessage) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chefSystemPrompt},
	}

	start := 0
	if len(history) > 10 {
		start = len(history) - 10
	}
	for _, msg := range history[start:] {
		role := msg.Role
		if role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	return s.ai.ChatText(ctx, ChatModel, messages, 0.7, 1000)
}

// TestConnection verifies the API key works by asking for a greeting.
func (s *LLMService) TestConnection(ctx context.Context) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "Say 'Hello, Chef!' in a friendly way."},
	}
	return s.ai.ChatText(ctx, ChatModel, messages, 0, 50)
}

// EstimateNutrition asks the model for approximate per-serving macros.
func (s *LLMService) EstimateNutrition(ctx context.Context, recipeName string, ingredients []string, servings int) (*NutritionEstimate, error) {
	if servings <= 0 {
		servings = 4
	}

	prompt := fmt.Sprintf(`Estimate the nutrition for this recipe.

Recipe: %s
Servings: %d
Ingredients:
%s

Respond as JSON:
{
    "per_serving": {"calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0, "sodium": 0},
    "health_notes": ["note 1", "note 2"],
    "disclaimer": "Estimates only."
}

All per_serving values must be numbers: calories in kcal, sodium in mg, everything else in grams.`,
		recipeName, servings, strings.Join(ingredients, "\n"))

	content, err := s.ai.ChatJSON(ctx, ChatModel, "You are a nutrition expert. Respond only with JSON.", prompt, 0.3)
	if err != nil {
		return nil, err
	}

	var estimate NutritionEstimate
	if err := json.Unmarshal([]byte(content), &estimate); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition estimate: %w", err)
	}
	if estimate.Disclaimer == "" {
		estimate.Disclaimer = "Estimates only. Consult a nutritionist for accurate values."
	}

	return &estimate, nil
}

// truncateRunes shortens s to at most n runes, so a multi-byte character
// is never split mid-sequence.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func suggestionCacheKey(ingredients, restrictions []string, cuisine string) string {
	payload, _ := json.Marshal(struct {
		Ingredients  []string `json:"ingredients"`
		Restrictions []string `json:"restrictions"`
		Cuisine      string   `json:"cuisine"`
	}{ingredients, restrictions, cuisine})

	sum := sha256.Sum256(payload)
	return "ai:suggest:" + hex.EncodeToString(sum[:16])
}
