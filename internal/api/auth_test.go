package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/service"
)

func setupAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	authSvc := service.NewAuthService(db, "test-secret")
	handler := NewAuthHandler(authSvc, service.NewProfileService(db))

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, db)

	w := postJSON(router, "/api/v1/auth/register", `{
		"email": "test@example.com",
		"username": "testuser",
		"password": "testpassword123"
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])

	// Registering the same email again conflicts.
	w = postJSON(router, "/api/v1/auth/register", `{
		"email": "test@example.com",
		"username": "othername",
		"password": "testpassword123"
	}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, db)

	for name, body := range map[string]string{
		"bad email":      `{"email": "not-an-email", "username": "testuser", "password": "testpassword123"}`,
		"short password": `{"email": "test@example.com", "username": "testuser", "password": "short"}`,
		"short username": `{"email": "test@example.com", "username": "ab", "password": "testpassword123"}`,
	} {
		w := postJSON(router, "/api/v1/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, db)

	w := postJSON(router, "/api/v1/auth/register", `{
		"email": "login@example.com",
		"username": "loginuser",
		"password": "testpassword123"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/v1/auth/login", `{
		"email": "login@example.com",
		"password": "testpassword123"
	}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])

	w = postJSON(router, "/api/v1/auth/login", `{
		"email": "login@example.com",
		"password": "wrongpassword"
	}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(router, "/api/v1/auth/login", `{
		"email": "nobody@example.com",
		"password": "testpassword123"
	}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, db)

	w := postJSON(router, "/api/v1/auth/register", `{
		"email": "profile@example.com",
		"username": "profileuser",
		"display_name": "Profile User",
		"password": "testpassword123"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	token := registered["token"]
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	var profile service.Profile
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &profile))
	assert.Equal(t, "profile@example.com", profile.Email)
	assert.Equal(t, "profileuser", profile.Username)
	assert.Equal(t, "beginner", profile.Preferences.SkillLevel)

	req = httptest.NewRequest("PUT", "/api/v1/profile", bytes.NewBufferString(`{
		"dietary_restrictions": ["vegetarian"],
		"skill_level": "advanced",
		"default_servings": 4
	}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &profile))
	assert.Equal(t, []string{"vegetarian"}, []string(profile.Preferences.DietaryRestrictions))
	assert.Equal(t, "advanced", profile.Preferences.SkillLevel)
	assert.Equal(t, 4, profile.Preferences.DefaultServings)
}

func TestProfileRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
