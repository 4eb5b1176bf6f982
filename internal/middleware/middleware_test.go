package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(handlers...)
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func get(engine *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestIDGenerated(t *testing.T) {
	engine := newEngine(RequestID())

	w := get(engine, nil)
	assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))
}

func TestRequestIDPreserved(t *testing.T) {
	engine := newEngine(RequestID())

	w := get(engine, map[string]string{HeaderXRequestID: "req-42"})
	assert.Equal(t, "req-42", w.Header().Get(HeaderXRequestID))
}

func TestCORSPreflight(t *testing.T) {
	engine := newEngine(CORS(DefaultCORSConfig()))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8080", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"http://app.clinic.test"}
	engine := newEngine(CORS(cfg))

	w := get(engine, map[string]string{"Origin": "http://app.clinic.test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://app.clinic.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiterThrottles(t *testing.T) {
	limiter := NewRateLimiter(RateLimiterConfig{RPS: 1, Burst: 2})
	engine := newEngine(limiter.RateLimit())

	assert.Equal(t, http.StatusOK, get(engine, nil).Code)
	assert.Equal(t, http.StatusOK, get(engine, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(engine, nil).Code)
}

func TestRecoveryConvertsPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Recovery())
	engine.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
