package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/service"
)

type stubRAGService struct {
	indexed     int
	indexErr    error
	stats       *service.IndexStats
	results     []service.SemanticResult
	suggestions *service.RAGSuggestions
	retrieved   int
	suggestErr  error
	cleared     int64
}

func (s *stubRAGService) IndexAll(ctx context.Context) (int, error) {
	return s.indexed, s.indexErr
}

func (s *stubRAGService) Stats(ctx context.Context) (*service.IndexStats, error) {
	return s.stats, nil
}

func (s *stubRAGService) Clear(ctx context.Context) (int64, error) {
	return s.cleared, nil
}

func (s *stubRAGService) Search(ctx context.Context, query string, nResults int, cuisineFilter string, dietaryFilter []string) ([]service.SemanticResult, error) {
	return s.results, nil
}

func (s *stubRAGService) Suggest(ctx context.Context, query string, ingredients, dietaryRestrictions []string, cuisinePreference string) (*service.RAGSuggestions, int, error) {
	return s.suggestions, s.retrieved, s.suggestErr
}

func setupRAGRouter(stub service.IRAGService) *gin.Engine {
	handler := NewRAGHandler(stub)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestRAGIndex(t *testing.T) {
	router := setupRAGRouter(&stubRAGService{indexed: 10})

	req := httptest.NewRequest("POST", "/api/v1/rag/index", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(10), response["indexed_count"])
}

func TestRAGIndexEmptyCatalog(t *testing.T) {
	router := setupRAGRouter(&stubRAGService{indexErr: service.ErrNoIndexedRecipes})

	req := httptest.NewRequest("POST", "/api/v1/rag/index", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "No recipes found in database", response["message"])
}

func TestRAGSearch(t *testing.T) {
	router := setupRAGRouter(&stubRAGService{results: []service.SemanticResult{
		{Name: "Thai Green Curry", Distance: 0.12},
	}})

	w := postJSON(router, "/api/v1/rag/search", `{"query": "something spicy"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Query   string                   `json:"query"`
		Results []service.SemanticResult `json:"results"`
		Count   int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "something spicy", response.Query)
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "Thai Green Curry", response.Results[0].Name)
}

func TestRAGSuggestRequiresIndex(t *testing.T) {
	router := setupRAGRouter(&stubRAGService{suggestErr: service.ErrNoIndexedRecipes})

	w := postJSON(router, "/api/v1/rag/suggest", `{"query": "dinner ideas"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No recipes indexed. Call POST /api/v1/rag/index first.", response["error"])
}

func TestRAGNotConfigured(t *testing.T) {
	router := setupRAGRouter(nil)

	req := httptest.NewRequest("GET", "/api/v1/rag/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
