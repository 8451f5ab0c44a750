package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"TileArmy/internal/shared/transport"
	"TileArmy/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// jsonCaptureWriter 只缓存 JSON 响应体，静态资源直接透传。
type jsonCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *jsonCaptureWriter) capturing() bool {
	return strings.HasPrefix(w.Header().Get("Content-Type"), gin.MIMEJSON)
}

func (w *jsonCaptureWriter) Write(data []byte) (int, error) {
	if w.capturing() {
		_, _ = w.body.Write(data)
	}
	return w.ResponseWriter.Write(data)
}

func (w *jsonCaptureWriter) WriteString(s string) (int, error) {
	if w.capturing() {
		_, _ = w.body.WriteString(s)
	}
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 每个请求一条访问日志。业务码取 JSON 响应里的 code，没有时按 HTTP 状态推断。
// WebSocket 握手不包装 writer，Hijack 需要原始 writer。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.NewContext(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)
		if name := c.Param("name"); name != "" {
			transport.SetPlayer(ctx, name)
		}

		if isUpgrade(c.Request) {
			transport.SetPlayer(ctx, c.Query("name"))
			c.Next()
			transport.SetBizCode(ctx, transport.BizCode(transport.OK))
			transport.WriteAccessLog(ctx, log)
			return
		}

		w := &jsonCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		transport.SetBizCode(ctx, transport.BizCode(bizCodeOf(c.Writer.Status(), w.body.Bytes())))
		if len(c.Errors) > 0 {
			transport.SetErrorReason(ctx, c.Errors.Last().Error())
		}
		transport.WriteAccessLog(ctx, log)
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

func bizCodeOf(status int, body []byte) int {
	var payload struct {
		Code *int `json:"code"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.Code != nil {
		return *payload.Code
	}
	switch {
	case status == http.StatusNotFound:
		return transport.NotFound
	case status >= http.StatusInternalServerError:
		return transport.SystemError
	case status >= http.StatusBadRequest:
		return transport.InvalidParam
	}
	return transport.OK
}
