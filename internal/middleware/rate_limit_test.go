package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter()
	r.POST("/login", middleware.RateLimitByIP(0.01, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":12345"
		r.ServeHTTP(w, req)
		return w.Code
	}

	// burst of 2, then the bucket is empty
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestRateLimitByUser(t *testing.T) {
	r := setupRouter()
	r.GET("/me",
		func(c *gin.Context) {
			if id := c.Query("as"); id != "" {
				c.Set("user_id", id)
			}
			c.Next()
		},
		middleware.RateLimitByUser(0.01, 1),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)

	do := func(path string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("/me?as=user-a"))
	assert.Equal(t, http.StatusTooManyRequests, do("/me?as=user-a"))
	assert.Equal(t, http.StatusOK, do("/me?as=user-b"))

	// anonymous requests pass through untouched
	assert.Equal(t, http.StatusOK, do("/me"))
	assert.Equal(t, http.StatusOK, do("/me"))
}
