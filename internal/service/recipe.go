package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/model"
)

// RecipeFilters narrows catalog queries. Zero values mean no filtering.
type RecipeFilters struct {
	Cuisine             string
	Difficulty          string
	DietaryRestrictions []string
	Limit               int
}

// RecipeService handles catalog queries, the user cookbook and ingredient
// lookups.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns catalog recipes matching the filters.
func (s *RecipeService) ListRecipes(ctx context.Context, filters RecipeFilters) ([]model.Recipe, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&model.Recipe{}).Omit("embedding")
	if filters.Cuisine != "" {
		query = query.Where("cuisine ILIKE ?", "%"+filters.Cuisine+"%")
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty ILIKE ?", "%"+filters.Difficulty+"%")
	}
	for _, restriction := range filters.DietaryRestrictions {
		query = query.Where("dietary_tags @> ?", model.JSONBStringArray{restriction})
	}

	var recipes []model.Recipe
	if err := query.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).Omit("embedding").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe inserts a recipe into the catalog.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Candidates loads recipes matching the filters as plain snapshots for the
// ranker.
func (s *RecipeService) Candidates(ctx context.Context, cuisine string, dietaryRestrictions []string) ([]RecipeCandidate, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{}).Omit("embedding")
	if cuisine != "" {
		query = query.Where("cuisine ILIKE ?", "%"+cuisine+"%")
	}
	for _, restriction := range dietaryRestrictions {
		query = query.Where("dietary_tags @> ?", model.JSONBStringArray{restriction})
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	candidates := make([]RecipeCandidate, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		candidates = append(candidates, RecipeCandidate{
			ID:          r.ID.String(),
			Name:        r.Name,
			Description: r.Description,
			Ingredients: r.Ingredients,
			TotalTime:   r.TotalTime(),
			Difficulty:  r.Difficulty,
			Cuisine:     r.Cuisine,
			DietaryTags: r.DietaryTags,
		})
	}
	return candidates, nil
}

// RecentContext returns a compact summary of up to n recipes, used to keep
// AI suggestions aware of the catalog.
func (s *RecipeService) RecentContext(ctx context.Context, n int) ([]RecipeContext, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Omit("embedding").Limit(n).Find(&recipes).Error; err != nil {
		return nil, err
	}

	summaries := make([]RecipeContext, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, RecipeContext{
			Name:        r.Name,
			Description: r.Description,
			Cuisine:     r.Cuisine,
		})
	}
	return summaries, nil
}

// ListIngredients returns known ingredients ordered by name, optionally
// filtered by a search term.
func (s *RecipeService) ListIngredients(ctx context.Context, search string, limit int) ([]model.Ingredient, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Model(&model.Ingredient{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(search)+"%")
	}

	var ingredients []model.Ingredient
	if err := query.Order("name").Limit(limit).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// SaveRecipe adds a recipe to the user's cookbook. Saving twice updates
// the rating and notes instead of erroring.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID, rating int, notes string) error {
	if err := s.db.WithContext(ctx).Select("id").First(&model.Recipe{}, "id = ?", recipeID).Error; err != nil {
		return err
	}

	var existing model.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		existing.Rating = rating
		existing.Notes = notes
		return s.db.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	saved := model.SavedRecipe{
		UserID:   userID,
		RecipeID: recipeID,
		Rating:   rating,
		Notes:    notes,
	}
	return s.db.WithContext(ctx).Create(&saved).Error
}

// UnsaveRecipe removes a recipe from the user's cookbook.
func (s *RecipeService) UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.SavedRecipe{}).Error
}

// SavedRecipes lists the user's cookbook entries with their recipes.
func (s *RecipeService) SavedRecipes(ctx context.Context, userID uuid.UUID) ([]model.SavedRecipe, error) {
	var saved []model.SavedRecipe
	if err := s.db.WithContext(ctx).
		Preload("Recipe", func(db *gorm.DB) *gorm.DB { return db.Omit("embedding") }).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// SetImageURL stores the uploaded image location on a recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, recipeID uuid.UUID, imageURL string) error {
	result := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", recipeID).
		Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
