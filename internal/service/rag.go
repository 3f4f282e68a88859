package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/model"
)

// ErrNoIndexedRecipes is returned when a retrieval call runs before any
// recipe has been embedded.
var ErrNoIndexedRecipes = errors.New("no recipes indexed")

// SemanticResult is one retrieval hit with its embedding distance.
type SemanticResult struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Difficulty  string   `json:"difficulty"`
	DietaryTags []string `json:"dietary_tags"`
	Document    string   `json:"document"`
	Distance    float64  `json:"distance"`
}

// RAGRecommendation is one grounded suggestion referencing a catalog recipe.
type RAGRecommendation struct {
	RecipeName         string   `json:"recipe_name"`
	RecipeID           string   `json:"recipe_id"`
	WhyRecommended     string   `json:"why_recommended"`
	Modifications      string   `json:"modifications"`
	MissingIngredients []string `json:"missing_ingredients"`
}

// RAGSuggestions is the parsed result of a retrieval-augmented suggestion
// call.
type RAGSuggestions struct {
	Recommendations []RAGRecommendation `json:"recommendations"`
	GeneralTips     string              `json:"general_tips"`
}

// IndexStats summarizes the state of the vector index.
type IndexStats struct {
	TotalRecipes   int64  `json:"total_recipes"`
	IndexedRecipes int64  `json:"indexed_recipes"`
	EmbeddingModel string `json:"embedding_model"`
}

// RAGService implements retrieval-augmented recipe suggestions. Recipe
// embeddings live in a pgvector column on the recipes table; retrieval is
// a nearest-neighbor query ordered by embedding distance.
type RAGService struct {
	db *gorm.DB
	ai *OpenAIClient
}

// NewRAGService creates a new RAGService instance
func NewRAGService(db *gorm.DB, ai *OpenAIClient) *RAGService {
	return &RAGService{db: db, ai: ai}
}

// BuildDocument renders a recipe as the text that gets embedded. Richer
// documents give better semantic recall.
func (s *RAGService) BuildDocument(recipe *model.Recipe) string {
	tags := "none"
	if len(recipe.DietaryTags) > 0 {
		tags = strings.Join(recipe.DietaryTags, ", ")
	}

	return strings.TrimSpace(fmt.Sprintf(`Recipe: %s
Description: %s
Cuisine: %s
Difficulty: %s
Ingredients: %s
Dietary Tags: %s
Cooking Time: %d minutes`,
		recipe.Name,
		recipe.Description,
		recipe.Cuisine,
		recipe.Difficulty,
		strings.Join(recipe.Ingredients, ", "),
		tags,
		recipe.TotalTimeMinutes(),
	))
}

// IndexRecipe embeds a single recipe and stores the vector on its row.
func (s *RAGService) IndexRecipe(ctx context.Context, recipe *model.Recipe) error {
	vec, err := s.ai.GenerateEmbedding(ctx, s.BuildDocument(recipe))
	if err != nil {
		return fmt.Errorf("failed to embed recipe %s: %w", recipe.ID, err)
	}

	return s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", recipe.ID).
		Update("embedding", pgvector.NewVector(vec)).Error
}

// IndexAll embeds every recipe in the catalog. Returns the number of
// recipes indexed; recipes that fail to embed are skipped and logged.
func (s *RAGService) IndexAll(ctx context.Context) (int, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return 0, err
	}
	if len(recipes) == 0 {
		return 0, ErrNoIndexedRecipes
	}

	indexed := 0
	for i := range recipes {
		if err := s.IndexRecipe(ctx, &recipes[i]); err != nil {
			log.Printf("[RAGService] Skipping recipe %s: %v", recipes[i].ID, err)
			continue
		}
		indexed++
	}
	return indexed, nil
}

// Stats reports how much of the catalog is indexed.
func (s *RAGService) Stats(ctx context.Context) (*IndexStats, error) {
	var stats IndexStats
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&stats.TotalRecipes).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("embedding IS NOT NULL").
		Count(&stats.IndexedRecipes).Error; err != nil {
		return nil, err
	}
	stats.EmbeddingModel = string(EmbeddingModel)
	return &stats, nil
}

// Clear drops all stored embeddings so the catalog can be re-indexed.
func (s *RAGService) Clear(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("embedding IS NOT NULL").
		Update("embedding", nil)
	return result.RowsAffected, result.Error
}

type recipeWithDistance struct {
	model.Recipe
	Distance float64
}

// Search finds the recipes semantically closest to the query. Unlike
// keyword search this matches by meaning: "comfort food for winter" finds
// hearty soups and stews.
func (s *RAGService) Search(ctx context.Context, query string, nResults int, cuisineFilter string, dietaryFilter []string) ([]SemanticResult, error) {
	if nResults <= 0 {
		nResults = 5
	}

	vec, err := s.ai.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	dbQuery := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Select("recipes.*, embedding <-> ? AS distance", pgvector.NewVector(vec)).
		Where("embedding IS NOT NULL")
	if cuisineFilter != "" {
		dbQuery = dbQuery.Where("LOWER(cuisine) = ?", strings.ToLower(cuisineFilter))
	}

	var rows []recipeWithDistance
	if err := dbQuery.Order("distance ASC").Limit(nResults).Find(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]SemanticResult, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		if len(dietaryFilter) > 0 && !hasAnyTag(r.DietaryTags, dietaryFilter) {
			continue
		}
		results = append(results, SemanticResult{
			ID:          r.ID.String(),
			Name:        r.Name,
			Cuisine:     r.Cuisine,
			Difficulty:  r.Difficulty,
			DietaryTags: r.DietaryTags,
			Document:    s.BuildDocument(&r.Recipe),
			Distance:    r.Distance,
		})
	}
	return results, nil
}

// Suggest runs the retrieval-augmented pipeline: semantic search narrows
// the catalog to relevant recipes, then the model personalizes suggestions
// grounded in those recipes only.
func (s *RAGService) Suggest(ctx context.Context, query string, ingredients, dietaryRestrictions []string, cuisinePreference string) (*RAGSuggestions, int, error) {
	searchQuery := query
	if len(ingredients) > 0 {
		searchQuery += " using " + strings.Join(ingredients, ", ")
	}
	if cuisinePreference != "" {
		searchQuery += " " + cuisinePreference + " cuisine"
	}
	if len(dietaryRestrictions) > 0 {
		searchQuery += " " + strings.Join(dietaryRestrictions, ", ")
	}

	retrieved, err := s.Search(ctx, searchQuery, 5, cuisinePreference, dietaryRestrictions)
	if err != nil {
		return nil, 0, err
	}
	if len(retrieved) == 0 {
		return nil, 0, ErrNoIndexedRecipes
	}

	var contextParts []string
	for i, r := range retrieved {
		contextParts = append(contextParts, fmt.Sprintf("Recipe %d (id %s):\n%s", i+1, r.ID, r.Document))
	}

	system := `You are a helpful cooking assistant. You will be given recipes from our database and the user's query. Suggest which recipes best match their needs, propose modifications based on their ingredients, and be specific. Always base your suggestions on the recipes given, never invent new ones.`

	available := "Not specified"
	if len(ingredients) > 0 {
		available = strings.Join(ingredients, ", ")
	}
	restrictions := "None"
	if len(dietaryRestrictions) > 0 {
		restrictions = strings.Join(dietaryRestrictions, ", ")
	}
	cuisine := "Any"
	if cuisinePreference != "" {
		cuisine = cuisinePreference
	}

	prompt := fmt.Sprintf(`User's request: %s

User's available ingredients: %s
Dietary restrictions: %s
Cuisine preference: %s

Here are relevant recipes from our database:

%s

Based on these recipes, provide personalized suggestions. Format as JSON:
{
    "recommendations": [
        {
            "recipe_name": "Name from database",
            "recipe_id": "id from database",
            "why_recommended": "Brief explanation",
            "modifications": "Any suggested changes based on user's ingredients",
            "missing_ingredients": ["list of items they may need"]
        }
    ],
    "general_tips": "Overall cooking advice based on their request"
}`, query, available, restrictions, cuisine, strings.Join(contextParts, "\n\n"))

	content, err := s.ai.ChatJSON(ctx, ChatModel, system, prompt, 0.7)
	if err != nil {
		return nil, len(retrieved), err
	}

	var suggestions RAGSuggestions
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, len(retrieved), fmt.Errorf("failed to parse RAG response: %w", err)
	}
	return &suggestions, len(retrieved), nil
}

func hasAnyTag(tags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range tags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}
