package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freight-backoffice/internal/config"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := utils.Claims{
		UserID: uuid.New(),
		Email:  "ops@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newProtectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/any", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "production"},
		JWT:    config.JWTConfig{Secret: testSecret},
	}
	router := newProtectedRouter(cfg)

	tests := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{"missing header", http.MethodGet, "/any", "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "/any", "Basic abc", http.StatusUnauthorized},
		{"expired token", http.MethodGet, "/any", "Bearer " + signToken(t, "clerk", -time.Minute), http.StatusUnauthorized},
		{"valid token", http.MethodGet, "/any", "Bearer " + signToken(t, "clerk", time.Hour), http.StatusOK},
		{"clerk on admin route", http.MethodDelete, "/admin", "Bearer " + signToken(t, "clerk", time.Hour), http.StatusForbidden},
		{"admin on admin route", http.MethodDelete, "/admin", "Bearer " + signToken(t, RoleAdmin, time.Hour), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthMiddlewareDisabledInDevelopment(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Environment: "development"}}
	router := newProtectedRouter(cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthMiddlewareRequiresSecretInProduction(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Environment: "production"}}
	router := newProtectedRouter(cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/any", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
