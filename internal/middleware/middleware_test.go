package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protectedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/open", JWTAuth("secret"), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Name)
	})
	r.GET("/managers", JWTAuth("secret"), RequireRole("manager"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protectedEngine()
	exp := time.Now().Add(time.Hour).Unix()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/open", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/open", "garbage").Code)

	wrongKey := signed(t, "other", jwt.MapClaims{"employee_id": "e1", "role": "manager", "exp": exp})
	assert.Equal(t, http.StatusUnauthorized, do(r, "/open", wrongKey).Code)

	expired := signed(t, "secret", jwt.MapClaims{"employee_id": "e1", "role": "manager", "exp": time.Now().Add(-time.Hour).Unix()})
	assert.Equal(t, http.StatusUnauthorized, do(r, "/open", expired).Code)

	ok := signed(t, "secret", jwt.MapClaims{"employee_id": "e2", "name": "Mike Chen", "role": "stylist", "exp": exp})
	w := do(r, "/open", ok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mike Chen", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := protectedEngine()
	exp := time.Now().Add(time.Hour).Unix()

	stylist := signed(t, "secret", jwt.MapClaims{"employee_id": "e2", "role": "stylist", "exp": exp})
	assert.Equal(t, http.StatusForbidden, do(r, "/managers", stylist).Code)

	manager := signed(t, "secret", jwt.MapClaims{"employee_id": "e1", "role": "manager", "exp": exp})
	assert.Equal(t, http.StatusNoContent, do(r, "/managers", manager).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := do(r, "/", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter("test", RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2, EntryTTL: time.Minute})
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "/", "").Code)
	w := do(r, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	assert.Equal(t, 0, rl.purge(time.Now()))
	assert.Equal(t, 1, rl.purge(time.Now().Add(2*time.Minute)))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := do(r, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
