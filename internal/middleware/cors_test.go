package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"snaptex/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsEngine(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(origins))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doCORS(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowsExtensionOrigins(t *testing.T) {
	r := corsEngine(nil)

	w := doCORS(r, http.MethodGet, "chrome-extension://abcdefghijklmnop")
	assert.Equal(t, "chrome-extension://abcdefghijklmnop", w.Header().Get("Access-Control-Allow-Origin"))

	w = doCORS(r, http.MethodGet, "moz-extension://12345678")
	assert.Equal(t, "moz-extension://12345678", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowsListedWebOrigins(t *testing.T) {
	r := corsEngine([]string{"http://localhost:3000"})

	w := doCORS(r, http.MethodGet, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = doCORS(r, http.MethodGet, "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	r := corsEngine([]string{"http://localhost:3000"})

	w := doCORS(r, http.MethodOptions, "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
