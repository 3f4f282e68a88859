package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankPartialMatch(t *testing.T) {
	candidates := []RecipeCandidate{
		{
			ID:   "1",
			Name: "Thai Green Curry",
			Ingredients: []string{
				"coconut milk", "green curry paste", "chicken breast",
				"bamboo shoots", "thai basil", "fish sauce", "palm sugar",
				"lime leaves", "vegetable oil", "jasmine rice",
			},
		},
	}

	results := Rank([]string{"chicken", "garlic"}, candidates, 0)

	require.Len(t, results, 1)
	assert.Equal(t, 10, results[0].MatchPercentage)
	assert.Equal(t, []string{"chicken breast"}, results[0].IngredientsHave)
	assert.Len(t, results[0].IngredientsNeed, 9)
}

func TestRankHalfMatch(t *testing.T) {
	candidates := []RecipeCandidate{
		{
			ID:   "1",
			Name: "Simple Pasta Aglio e Olio",
			Ingredients: []string{
				"spaghetti", "garlic", "olive oil",
				"red pepper flakes", "parsley", "salt",
			},
		},
	}

	results := Rank([]string{"spaghetti", "garlic", "olive oil"}, candidates, 0)

	require.Len(t, results, 1)
	assert.Equal(t, 50, results[0].MatchPercentage)
	assert.Equal(t, []string{"spaghetti", "garlic", "olive oil"}, results[0].IngredientsHave)
	assert.Equal(t, []string{"red pepper flakes", "parsley", "salt"}, results[0].IngredientsNeed)
}

func TestRankFullMatchRanksFirst(t *testing.T) {
	candidates := []RecipeCandidate{
		{ID: "1", Name: "Roast Chicken", Ingredients: []string{"chicken", "salt", "butter"}},
		{ID: "2", Name: "Seasoned Salt", Ingredients: []string{"salt"}},
	}

	results := Rank([]string{"salt"}, candidates, 0)

	require.Len(t, results, 2)
	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, 100, results[0].MatchPercentage)
	assert.Equal(t, "1", results[1].ID)
	assert.Equal(t, 33, results[1].MatchPercentage)
}

func TestRankSkipsCandidatesWithNoIngredients(t *testing.T) {
	candidates := []RecipeCandidate{
		{ID: "1", Name: "Mystery Dish", Ingredients: nil},
		{ID: "2", Name: "Toast", Ingredients: []string{"bread"}},
	}

	results := Rank([]string{"bread"}, candidates, 0)

	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)
}

func TestRankTiesAreDeterministic(t *testing.T) {
	candidates := []RecipeCandidate{
		{ID: "1", Name: "Tomato Soup", Ingredients: []string{"tomatoes", "cream"}},
		{ID: "2", Name: "Tomato Salad", Ingredients: []string{"tomatoes", "basil"}},
	}

	first := Rank([]string{"tomatoes"}, candidates, 0)
	require.Len(t, first, 2)
	assert.Equal(t, first[0].MatchPercentage, first[1].MatchPercentage)

	// Ties keep catalog order, so repeated calls agree.
	for i := 0; i < 5; i++ {
		again := Rank([]string{"tomatoes"}, candidates, 0)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "1", first[0].ID)
	assert.Equal(t, "2", first[1].ID)
}

func TestRankFiltersZeroPercentMatches(t *testing.T) {
	candidates := []RecipeCandidate{
		{ID: "1", Name: "Beef Stew", Ingredients: []string{"beef", "carrots", "potatoes"}},
	}

	results := Rank([]string{"tofu"}, candidates, 0)
	assert.Empty(t, results)
}

func TestRankNormalizesCaseAndWhitespace(t *testing.T) {
	candidates := []RecipeCandidate{
		{ID: "1", Name: "Garlic Bread", Ingredients: []string{"Garlic", "Bread", "Butter"}},
	}

	results := Rank([]string{"  GARLIC ", "bread"}, candidates, 0)

	require.Len(t, results, 1)
	assert.Equal(t, 66, results[0].MatchPercentage)
	// Display keeps the catalog's casing.
	assert.Equal(t, []string{"Garlic", "Bread"}, results[0].IngredientsHave)
	assert.Equal(t, []string{"Butter"}, results[0].IngredientsNeed)
}

func TestRankSubstringMatchIsSymmetric(t *testing.T) {
	candidates := []RecipeCandidate{
		{ID: "1", Name: "Caprese", Ingredients: []string{"tomatoes", "mozzarella"}},
	}

	// User ingredient contains the required name.
	results := Rank([]string{"cherry tomatoes"}, candidates, 0)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"tomatoes"}, results[0].IngredientsHave)

	// Required name contains the user ingredient.
	results = Rank([]string{"tomato"}, candidates, 0)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"tomatoes"}, results[0].IngredientsHave)
}

func TestRankCapsResults(t *testing.T) {
	var candidates []RecipeCandidate
	for i := 0; i < 25; i++ {
		candidates = append(candidates, RecipeCandidate{
			ID:          fmt.Sprintf("%d", i),
			Name:        fmt.Sprintf("Egg Dish %d", i),
			Ingredients: []string{"eggs"},
		})
	}

	assert.Len(t, Rank([]string{"eggs"}, candidates, 0), DefaultMaxSuggestions)
	assert.Len(t, Rank([]string{"eggs"}, candidates, 3), 3)
	assert.Len(t, Rank([]string{"eggs"}, candidates, 100), 25)
}

func TestRankPercentageRoundsDown(t *testing.T) {
	candidates := []RecipeCandidate{
		{ID: "1", Name: "Stir Fry", Ingredients: []string{"rice", "soy sauce", "ginger"}},
	}

	results := Rank([]string{"rice"}, candidates, 0)
	require.Len(t, results, 1)
	assert.Equal(t, 33, results[0].MatchPercentage)
}

func TestRankNoCandidates(t *testing.T) {
	assert.Empty(t, Rank([]string{"eggs"}, nil, 0))
}
