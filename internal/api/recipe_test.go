package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/service"
)

func setupRecipeRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	authSvc := service.NewAuthService(db, "test-secret")
	handler := NewRecipeHandler(service.NewRecipeService(db), nil, nil, authSvc)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSuggestRecipesRequiresIngredients(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecipeRouter(t, db)

	for _, body := range []string{
		`{"ingredients": []}`,
		`{"ingredients": ["", "   "]}`,
		`{}`,
	} {
		w := postJSON(router, "/api/v1/recipes/suggest", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Please provide at least one ingredient", response["error"])
	}
}

func TestSuggestRecipesRanksMatches(t *testing.T) {
	db := setupTestDB(t)
	seedTestRecipes(t, db)
	router := setupRecipeRouter(t, db)

	w := postJSON(router, "/api/v1/recipes/suggest",
		`{"ingredients": ["spaghetti", "garlic", "olive oil", "red pepper flakes"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Suggestions, 2)
	assert.Equal(t, "Simple Pasta Aglio e Olio", response.Suggestions[0].Name)
	assert.Equal(t, 100, response.Suggestions[0].MatchPercentage)
	assert.ElementsMatch(t,
		[]string{"spaghetti", "garlic", "olive oil", "red pepper flakes"},
		response.Suggestions[0].IngredientsHave)
	assert.Empty(t, response.Suggestions[0].IngredientsNeed)

	// Greek Salad shares only olive oil out of four ingredients.
	assert.Equal(t, "Greek Salad", response.Suggestions[1].Name)
	assert.Equal(t, 25, response.Suggestions[1].MatchPercentage)

	assert.Equal(t, "Found 2 recipes matching your 4 ingredients!", response.Message)
	assert.Equal(t, 3, response.TotalRecipesSearched)
}

func TestSuggestRecipesHonorsMaxResults(t *testing.T) {
	db := setupTestDB(t)
	seedTestRecipes(t, db)
	router := setupRecipeRouter(t, db)

	// Olive oil appears in both the pasta and the salad; the cap keeps
	// only the best-ranked of the two.
	w := postJSON(router, "/api/v1/recipes/suggest",
		`{"ingredients": ["olive oil"], "max_results": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Suggestions, 1)
	assert.Equal(t, "Simple Pasta Aglio e Olio", response.Suggestions[0].Name)
}

func TestSuggestRecipesNoMatches(t *testing.T) {
	db := setupTestDB(t)
	seedTestRecipes(t, db)
	router := setupRecipeRouter(t, db)

	w := postJSON(router, "/api/v1/recipes/suggest", `{"ingredients": ["marshmallows"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Suggestions)
	assert.Equal(t, "Found 0 recipes matching your 1 ingredients!", response.Message)
	assert.Equal(t, 3, response.TotalRecipesSearched)
}

func TestSuggestRecipesAIUnavailable(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecipeRouter(t, db)

	w := postJSON(router, "/api/v1/recipes/suggest?use_ai=true", `{"ingredients": ["garlic"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListRecipes(t *testing.T) {
	db := setupTestDB(t)
	seedTestRecipes(t, db)
	router := setupRecipeRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/recipes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []RecipeSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.NotEqual(t, uuid.Nil, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.TotalTime)
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecipeRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/recipes/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/recipes/not-a-uuid", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveRecipeAndCookbook(t *testing.T) {
	db := setupTestDB(t)
	seedTestRecipes(t, db)

	authSvc := service.NewAuthService(db, "test-secret")
	token, err := authSvc.Register("cook@example.com", "cook", "Cook", "password123")
	require.NoError(t, err)

	router := setupRecipeRouter(t, db)

	var recipeID string
	{
		req := httptest.NewRequest("GET", "/api/v1/recipes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var summaries []RecipeSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.NotEmpty(t, summaries)
		recipeID = summaries[0].ID.String()
	}

	req := httptest.NewRequest("POST", "/api/v1/recipes/"+recipeID+"/save",
		bytes.NewBufferString(`{"rating": 5, "notes": "family favorite"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Saving an unknown recipe is a 404.
	req = httptest.NewRequest("POST", "/api/v1/recipes/"+uuid.NewString()+"/save",
		bytes.NewBufferString(`{"rating": 3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/recipes/cookbook", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var cookbook struct {
		SavedRecipes []struct {
			RecipeID uuid.UUID `json:"recipe_id"`
			Rating   int       `json:"rating"`
			Notes    string    `json:"notes"`
		} `json:"saved_recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cookbook))
	require.Len(t, cookbook.SavedRecipes, 1)
	assert.Equal(t, recipeID, cookbook.SavedRecipes[0].RecipeID.String())
	assert.Equal(t, 5, cookbook.SavedRecipes[0].Rating)
	assert.Equal(t, "family favorite", cookbook.SavedRecipes[0].Notes)
}

func TestCookbookRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecipeRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/recipes/cookbook", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
