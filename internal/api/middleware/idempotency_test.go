package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"AlumniHub/internal/api/dto"
	appredis "AlumniHub/internal/pkg/redis"
	"AlumniHub/internal/pkg/response"
	"AlumniHub/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	srv, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	appredis.Rdb = goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	code := m.Run()
	srv.Close()
	os.Exit(code)
}

func doPost(t *testing.T, r *gin.Engine, key string) *dto.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	if key != "" {
		req.Header.Set("X-Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestIdempotencyBlocksDuplicate(t *testing.T) {
	r := gin.New()
	r.POST("/submit", IdempotencyMiddleware(), func(c *gin.Context) {
		response.Success(c, nil)
	})

	first := doPost(t, r, "key-ok")
	assert.Equal(t, response.Ok, first.Code)

	// 同一个键的重复提交被拦下
	second := doPost(t, r, "key-ok")
	assert.Equal(t, service.ErrorMap[service.ErrActionDuplicate], second.Code)

	// 不带键的请求互不影响
	assert.Equal(t, response.Ok, doPost(t, r, "").Code)
	assert.Equal(t, response.Ok, doPost(t, r, "").Code)
}

func TestIdempotencyKeyReleasedOnFailure(t *testing.T) {
	failures := 1
	r := gin.New()
	r.POST("/submit", IdempotencyMiddleware(), func(c *gin.Context) {
		if failures > 0 {
			failures--
			response.Fail(c, response.InternalServerError, "未知错误")
			return
		}
		response.Success(c, nil)
	})

	// 第一次处理失败，幂等键必须释放
	first := doPost(t, r, "key-retry")
	assert.Equal(t, response.InternalServerError, first.Code)

	// 同一个键重试要能成功，而不是被当成重复提交
	second := doPost(t, r, "key-retry")
	assert.Equal(t, response.Ok, second.Code)
}
