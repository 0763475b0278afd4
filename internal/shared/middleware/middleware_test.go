package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/pkg/jwt"
)

func adminRouter(m *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), RequestID())
	r.GET("/admin/ping", AuthMiddleware(m), AdminMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func call(r http.Handler, path, token string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoutes_RequireAdminToken(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	r := adminRouter(m)

	adminToken, err := m.GenerateAccessToken(uuid.NewString(), "ops@example.com", RoleAdmin)
	require.NoError(t, err)
	userToken, err := m.GenerateAccessToken(uuid.NewString(), "buyer@example.com", "user")
	require.NoError(t, err)
	badSubject, err := m.GenerateAccessToken("not-a-uuid", "x@example.com", RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, call(r, "/admin/ping", adminToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, call(r, "/admin/ping", userToken, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/admin/ping", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/admin/ping", "garbage", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/admin/ping", badSubject, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/admin/ping", "", map[string]string{"Authorization": "Token abc"}).Code)
}

func TestRequestID(t *testing.T) {
	r := adminRouter(jwt.NewManager("test-secret", time.Hour))

	w := call(r, "/admin/ping", "", map[string]string{RequestIDHeader: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = call(r, "/admin/ping", "", nil)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	w = call(r, "/admin/ping", "", map[string]string{RequestIDHeader: strings.Repeat("x", 100)})
	assert.NotEqual(t, strings.Repeat("x", 100), w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := adminRouter(jwt.NewManager("test-secret", time.Hour))

	w := call(r, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
