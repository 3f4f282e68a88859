package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeChatServer(t *testing.T, content string) {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": content}},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode fake response: %v", err)
		}
	}))
	t.Cleanup(ts.Close)

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_BASE_URL", ts.URL)
}

func TestAnalyzeImageParsesIngredients(t *testing.T) {
	fakeChatServer(t, `{
		"ingredients": [
			{"name": "eggs", "quantity": "6", "location": "door shelf", "category": "dairy"},
			{"name": "milk", "quantity": "1L", "category": "dairy"}
		],
		"total_count": 2,
		"areas_checked": ["door shelves"],
		"summary": "A lightly stocked fridge",
		"meal_potential": "Omelette"
	}`)

	ai, err := NewOpenAIClient()
	require.NoError(t, err)
	vision := NewVisionService(ai)

	analysis, err := vision.AnalyzeImage(context.Background(), []byte("fake-image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, []string{"eggs", "milk"}, analysis.IngredientNames)
	assert.Equal(t, 2, analysis.TotalCount)
	assert.Equal(t, "A lightly stocked fridge", analysis.Summary)
	assert.Equal(t, "Omelette", analysis.MealPotential)
	require.Len(t, analysis.Ingredients, 2)
	assert.Equal(t, "door shelf", analysis.Ingredients[0].Location)
}

func TestAnalyzeImageAcceptsBareStringIngredients(t *testing.T) {
	fakeChatServer(t, `{"ingredients": ["eggs", "milk", "butter"], "summary": ""}`)

	ai, err := NewOpenAIClient()
	require.NoError(t, err)
	vision := NewVisionService(ai)

	analysis, err := vision.AnalyzeFast(context.Background(), []byte("fake-image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, []string{"eggs", "milk", "butter"}, analysis.IngredientNames)
	assert.Equal(t, 3, analysis.TotalCount)
	assert.Equal(t, "Found 3 items", analysis.Summary)
}

func TestAnalyzeImageStripsCodeFence(t *testing.T) {
	fakeChatServer(t, "```json\n{\"ingredients\": [{\"name\": \"tomatoes\"}], \"summary\": \"One item\"}\n```")

	ai, err := NewOpenAIClient()
	require.NoError(t, err)
	vision := NewVisionService(ai)

	analysis, err := vision.AnalyzeBase64(context.Background(), "ZmFrZQ==")
	require.NoError(t, err)
	assert.Equal(t, []string{"tomatoes"}, analysis.IngredientNames)
}

func TestAnalyzeImageRejectsGarbage(t *testing.T) {
	fakeChatServer(t, "I could not process that image, sorry!")

	ai, err := NewOpenAIClient()
	require.NoError(t, err)
	vision := NewVisionService(ai)

	_, err = vision.AnalyzeImage(context.Background(), []byte("fake-image-bytes"))
	assert.Error(t, err)
}
