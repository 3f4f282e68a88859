package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/types"
)

type stubValidator struct {
	userID uuid.UUID
}

func (v *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != "good-token" {
		return nil, errors.New("invalid token")
	}
	return &types.TokenClaims{UserID: v.userID, Username: "chef"}, nil
}

func identityRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", handler, func(c *gin.Context) {
		if userID, exists := c.Get("user_id"); exists {
			c.JSON(http.StatusOK, gin.H{"user_id": userID.(uuid.UUID).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := identityRouter(AuthMiddleware(&stubValidator{}))

	w := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(router, "bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthSetsUserWhenTokenValid(t *testing.T) {
	userID := uuid.New()
	router := identityRouter(OptionalAuthMiddleware(&stubValidator{userID: userID}))

	w := doGet(router, "good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	router := identityRouter(OptionalAuthMiddleware(&stubValidator{userID: uuid.New()}))

	w := doGet(router, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")

	// A garbage token degrades to anonymous instead of blocking the
	// request.
	w = doGet(router, "bad-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}
