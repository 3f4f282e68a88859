package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrychef/backend/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens an in-memory sqlite database with the schema the
// handlers query. Postgres-only column types are stored as TEXT.
func setupTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			email TEXT UNIQUE,
			username TEXT UNIQUE,
			display_name TEXT,
			password_hash TEXT
		);`,
		`CREATE TABLE user_preferences (
			id TEXT PRIMARY KEY,
			user_id TEXT UNIQUE,
			dietary_restrictions TEXT,
			allergies TEXT,
			favorite_cuisines TEXT,
			skill_level TEXT DEFAULT 'beginner',
			default_servings INTEGER DEFAULT 2,
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

func seedTestRecipes(t *testing.T, db *gorm.DB) {
	t.Helper()

	recipes := []model.Recipe{
		{
			Name:            "Thai Green Curry",
			Description:     "A fragrant and spicy Thai curry.",
			Cuisine:         "Thai",
			Difficulty:      "Easy",
			PrepTimeMinutes: 15,
			CookTimeMinutes: 25,
			Servings:        4,
			DietaryTags:     model.JSONBStringArray{"gluten-free"},
			Ingredients:     model.JSONBStringArray{"coconut milk", "green curry paste", "chicken breast", "thai basil"},
			Instructions:    model.JSONBStringArray{"Simmer everything."},
		},
		{
			Name:            "Simple Pasta Aglio e Olio",
			Description:     "Garlic and olive oil pasta.",
			Cuisine:         "Italian",
			Difficulty:      "Easy",
			PrepTimeMinutes: 5,
			CookTimeMinutes: 15,
			Servings:        2,
			DietaryTags:     model.JSONBStringArray{"vegetarian", "vegan"},
			Ingredients:     model.JSONBStringArray{"spaghetti", "garlic", "olive oil", "red pepper flakes"},
			Instructions:    model.JSONBStringArray{"Toss pasta in garlic oil."},
		},
		{
			Name:            "Greek Salad",
			Description:     "Fresh Mediterranean salad.",
			Cuisine:         "Mediterranean",
			Difficulty:      "Easy",
			PrepTimeMinutes: 15,
			Servings:        4,
			DietaryTags:     model.JSONBStringArray{"vegetarian"},
			Ingredients:     model.JSONBStringArray{"tomatoes", "cucumber", "feta cheese", "olive oil"},
			Instructions:    model.JSONBStringArray{"Combine and dress."},
		},
	}
	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			t.Fatalf("failed to seed recipe: %v", err)
		}
	}
}
