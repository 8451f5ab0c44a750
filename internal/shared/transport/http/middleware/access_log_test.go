package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"TileArmy/internal/shared/transport"
	"TileArmy/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

func TestBizCodeOf(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   int
	}{
		{"响应体带code", http.StatusOK, `{"code":409,"msg":"x"}`, transport.Conflict},
		{"无body成功", http.StatusOK, "", transport.OK},
		{"404", http.StatusNotFound, "", transport.NotFound},
		{"400", http.StatusBadRequest, "", transport.InvalidParam},
		{"500", http.StatusBadGateway, "", transport.SystemError},
		{"非JSON", http.StatusOK, "<html>", transport.OK},
	}
	for _, tc := range cases {
		if got := bizCodeOf(tc.status, []byte(tc.body)); got != tc.want {
			t.Fatalf("%s: got=%d want=%d", tc.name, got, tc.want)
		}
	}
}

func TestAccessLog_只缓存JSON响应(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var captured *jsonCaptureWriter
	r := gin.New()
	r.Use(AccessLog(logx.Nop()))
	r.Use(func(c *gin.Context) {
		captured, _ = c.Writer.(*jsonCaptureWriter)
		c.Next()
	})
	r.GET("/json", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"code": 0}) })
	r.GET("/text", func(c *gin.Context) { c.String(http.StatusOK, "hello") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/json", nil))
	if captured == nil || captured.body.Len() == 0 {
		t.Fatalf("期望 JSON 响应被缓存")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/text", nil))
	if captured == nil || captured.body.Len() != 0 {
		t.Fatalf("非 JSON 响应不应缓存")
	}
	if w.Body.String() != "hello" {
		t.Fatalf("响应体应透传, got=%q", w.Body.String())
	}
}
