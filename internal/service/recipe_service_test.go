package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrychef/backend/internal/model"
)

// setupCatalogDB opens an in-memory sqlite database with the catalog
// schema. Postgres-only column types are stored as TEXT.
func setupCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	statements := []string{
		`CREATE TABLE recipes (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			name TEXT,
			description TEXT,
			cuisine TEXT,
			difficulty TEXT,
			prep_time_minutes INTEGER,
			cook_time_minutes INTEGER,
			servings INTEGER,
			dietary_tags TEXT,
			ingredients TEXT,
			instructions TEXT,
			image_url TEXT,
			source_url TEXT,
			embedding TEXT
		);`,
		`CREATE TABLE ingredients (
			id TEXT PRIMARY KEY,
			name TEXT UNIQUE,
			category TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE saved_recipes (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			recipe_id TEXT,
			rating INTEGER,
			notes TEXT,
			saved_at DATETIME
		);`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}
	return db
}

// seedCatalog inserts two recipes through the service and leaves their
// embedding column holding values no vector parser accepts, the way a
// partially indexed or freshly seeded catalog looks.
func seedCatalog(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	svc := NewRecipeService(db)
	ctx := context.Background()

	curry := &model.Recipe{
		Name:        "Thai Green Curry",
		Cuisine:     "Thai",
		Difficulty:  "Easy",
		Ingredients: model.JSONBStringArray{"coconut milk", "green curry paste"},
	}
	pasta := &model.Recipe{
		Name:        "Simple Pasta Aglio e Olio",
		Cuisine:     "Italian",
		Difficulty:  "Easy",
		Ingredients: model.JSONBStringArray{"spaghetti", "garlic", "olive oil"},
	}
	for _, r := range []*model.Recipe{curry, pasta} {
		created, err := svc.CreateRecipe(ctx, r)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.ID)
	}

	require.NoError(t, db.Exec("UPDATE recipes SET embedding = '' WHERE id = ?", curry.ID).Error)
	require.NoError(t, db.Exec("UPDATE recipes SET embedding = NULL WHERE id = ?", pasta.ID).Error)
	return curry.ID, pasta.ID
}

func TestCatalogReadsSkipEmbeddingColumn(t *testing.T) {
	db := setupCatalogDB(t)
	curryID, _ := seedCatalog(t, db)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipes, err := svc.ListRecipes(ctx, RecipeFilters{})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	recipe, err := svc.GetRecipe(ctx, curryID)
	require.NoError(t, err)
	assert.Equal(t, "Thai Green Curry", recipe.Name)

	candidates, err := svc.Candidates(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.NotEmpty(t, candidates[0].Ingredients)

	summaries, err := svc.RecentContext(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestCookbookReadsSkipEmbeddingColumn(t *testing.T) {
	db := setupCatalogDB(t)
	curryID, _ := seedCatalog(t, db)
	svc := NewRecipeService(db)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.SaveRecipe(ctx, userID, curryID, 5, "family favorite"))

	saved, err := svc.SavedRecipes(ctx, userID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Thai Green Curry", saved[0].Recipe.Name)
	assert.Equal(t, 5, saved[0].Rating)
}

func TestIndexStatsReportsModelName(t *testing.T) {
	db := setupCatalogDB(t)
	seedCatalog(t, db)
	rag := NewRAGService(db, nil)
	ctx := context.Background()

	stats, err := rag.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRecipes)
	assert.Equal(t, int64(1), stats.IndexedRecipes)
	assert.Equal(t, "text-embedding-3-small", stats.EmbeddingModel)

	cleared, err := rag.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)
}
