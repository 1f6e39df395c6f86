package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	authed := router.Group("", m.JWTAuth())
	authed.GET("/whoami", func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "role": string(actor.Role)})
	})

	student := authed.Group("/student", m.RoleRequired(models.RoleStudent))
	student.GET("/area", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role models.Role) string {
	t.Helper()
	token, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:    7,
		Role:  role,
		Email: "someone@example.edu",
	})
	require.NoError(t, err)
	return token
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	router, jwtService := newTestRouter(t)

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(router, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(router, "/whoami", "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token resolves actor", func(t *testing.T) {
		token := issueToken(t, jwtService, models.RoleStudent)
		rec := doRequest(router, "/whoami", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"userId":7`)
		assert.Contains(t, rec.Body.String(), `"role":"student"`)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewJWTService(auth.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenExp:  -time.Minute,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "test",
		})
		token := issueToken(t, expired, models.RoleStudent)
		rec := doRequest(router, "/whoami", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "AUTH_006")
	})
}

func TestRoleRequired(t *testing.T) {
	router, jwtService := newTestRouter(t)

	t.Run("matching role passes", func(t *testing.T) {
		token := issueToken(t, jwtService, models.RoleStudent)
		rec := doRequest(router, "/student/area", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role mismatch is forbidden", func(t *testing.T) {
		token := issueToken(t, jwtService, models.RoleTeacher)
		rec := doRequest(router, "/student/area", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "AUTH_009")
	})

	t.Run("unauthenticated is rejected before role check", func(t *testing.T) {
		rec := doRequest(router, "/student/area", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
