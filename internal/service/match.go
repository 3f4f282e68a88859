package service

import (
	"sort"
	"strings"
)

// DefaultMaxSuggestions caps how many ranked matches a suggestion
// request returns when the caller does not ask for a specific limit.
const DefaultMaxSuggestions = 10

// RecipeCandidate is a plain snapshot of a catalog recipe, decoupled from
// the persistence layer so the ranker stays pure.
type RecipeCandidate struct {
	ID          string
	Name        string
	Description string
	Ingredients []string
	TotalTime   string
	Difficulty  string
	Cuisine     string
	DietaryTags []string
}

// MatchResult is one ranked suggestion: the candidate's display fields plus
// the have/need partition of its ingredient list and the match percentage.
type MatchResult struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	IngredientsHave []string `json:"ingredients_have"`
	IngredientsNeed []string `json:"ingredients_need"`
	MatchPercentage int      `json:"match_percentage"`
	TotalTime       string   `json:"total_time"`
	Difficulty      string   `json:"difficulty"`
	Cuisine         string   `json:"cuisine"`
	DietaryTags     []string `json:"dietary_tags"`
}

// NormalizeIngredient lower-cases and trims an ingredient name for
// comparison. Display fields keep their original casing.
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ingredientSatisfied reports whether a required ingredient is covered by
// any of the user's ingredients. Matching is symmetric substring
// containment on normalized names: "chicken" covers "chicken breast" and
// "cherry tomatoes" covers "tomatoes".
func ingredientSatisfied(required string, userIngredients []string) bool {
	for _, u := range userIngredients {
		if strings.Contains(required, u) || strings.Contains(u, required) {
			return true
		}
	}
	return false
}

// Rank scores each candidate against the user's ingredients and returns up
// to maxResults suggestions ordered by match percentage, best first.
//
// Callers must reject empty userIngredients before ranking; the HTTP layer
// returns 400 for that case. Rank itself has no I/O and no shared state,
// so it is safe to call concurrently.
func Rank(userIngredients []string, candidates []RecipeCandidate, maxResults int) []MatchResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxSuggestions
	}

	normalized := make([]string, 0, len(userIngredients))
	for _, ing := range userIngredients {
		normalized = append(normalized, NormalizeIngredient(ing))
	}

	results := make([]MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		var have, need []string
		for _, required := range candidate.Ingredients {
			if ingredientSatisfied(NormalizeIngredient(required), normalized) {
				have = append(have, required)
			} else {
				need = append(need, required)
			}
		}

		// Zero-ingredient candidates score 0 and are filtered below.
		pct := 0
		if len(candidate.Ingredients) > 0 {
			pct = len(have) * 100 / len(candidate.Ingredients)
		}
		if pct <= 0 {
			continue
		}

		results = append(results, MatchResult{
			ID:              candidate.ID,
			Name:            candidate.Name,
			Description:     candidate.Description,
			IngredientsHave: have,
			IngredientsNeed: need,
			MatchPercentage: pct,
			TotalTime:       candidate.TotalTime,
			Difficulty:      candidate.Difficulty,
			Cuisine:         candidate.Cuisine,
			DietaryTags:     candidate.DietaryTags,
		})
	}

	// Stable sort keeps catalog order between equal percentages, so the
	// output is deterministic for identical inputs.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
