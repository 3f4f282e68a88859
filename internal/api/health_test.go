package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthReportsSubsystems(t *testing.T) {
	db := setupTestDB(t)
	handler := NewHealthHandler(db, nil, nil, nil)
	router := gin.New()
	handler.RegisterRoutes(router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "connected", response["database"])
	assert.Equal(t, "not configured", response["redis"])
	assert.Equal(t, "not configured", response["ai_service"])
	assert.Equal(t, float64(0), response["indexed_recipes"])
}

func TestRootBanner(t *testing.T) {
	db := setupTestDB(t)
	handler := NewHealthHandler(db, nil, nil, nil)
	router := gin.New()
	handler.RegisterRoutes(router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Pantry Chef API is running!", response["message"])
}
