package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/tools/:id/moves::retry-1"
	const lockKey = cacheKey + ":lock"

	do := func(r *gin.Engine, key string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tools/abc/moves", nil)
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request takes the lock and runs the handler", func(t *testing.T) {
		rdb, rdbMock := redismock.NewClientMock()
		r := setupRouter()
		calls := 0
		r.POST("/tools/:id/moves", middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"moved": true})
		})

		rdbMock.ExpectGet(cacheKey).RedisNil()
		rdbMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		w := do(r, "retry-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, rdbMock.ExpectationsWereMet())
	})

	t.Run("retry replays the cached response without the handler", func(t *testing.T) {
		rdb, rdbMock := redismock.NewClientMock()
		r := setupRouter()
		calls := 0
		r.POST("/tools/:id/moves", middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"moved": true})
		})

		cached, err := json.Marshal(map[string]any{"move_id": "m-1"})
		assert.NoError(t, err)
		rdbMock.ExpectGet(cacheKey).SetVal(string(cached))

		w := do(r, "retry-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, calls)
		assert.Contains(t, w.Body.String(), "m-1")
		assert.NoError(t, rdbMock.ExpectationsWereMet())
	})

	t.Run("duplicate in flight is rejected", func(t *testing.T) {
		rdb, rdbMock := redismock.NewClientMock()
		r := setupRouter()
		calls := 0
		r.POST("/tools/:id/moves", middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"moved": true})
		})

		rdbMock.ExpectGet(cacheKey).RedisNil()
		rdbMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := do(r, "retry-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
		assert.NoError(t, rdbMock.ExpectationsWereMet())
	})

	t.Run("no key skips the middleware", func(t *testing.T) {
		rdb, rdbMock := redismock.NewClientMock()
		r := setupRouter()
		calls := 0
		r.POST("/tools/:id/moves", middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"moved": true})
		})

		w := do(r, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, rdbMock.ExpectationsWereMet())
	})
}
