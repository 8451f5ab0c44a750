package http

import (
	"context"
	nethttp "net/http"

	"TileArmy/internal/gate/interfaces/handler"
	"TileArmy/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

type HttpHandler struct {
	gate *handler.Gate
}

func NewHttpHandler(g *handler.Gate) *HttpHandler {
	return &HttpHandler{gate: g}
}

func (h *HttpHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/cfg.json", h.ViewConfig)

	api := r.Group("/api")
	api.GET("/config", h.GameConfig)
	api.GET("/players/:name", h.PlayerView)
	api.DELETE("/players/:name", h.RemovePlayer)
}

// ViewConfig 是客户端视口与图标尺寸。
func (h *HttpHandler) ViewConfig(c *gin.Context) {
	c.JSON(nethttp.StatusOK, h.gate.View)
}

// GameConfig 与 init 消息中的 cfg 块相同。
func (h *HttpHandler) GameConfig(c *gin.Context) {
	c.JSON(nethttp.StatusOK, h.gate.Config.Public())
}

func (h *HttpHandler) PlayerView(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	transport.SetPlayer(ctx, name)

	view, err := h.gate.GateService.PlayerView(ctx, name)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, view)
}

func (h *HttpHandler) RemovePlayer(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	transport.SetPlayer(ctx, name)

	if err := h.gate.GateService.RemovePlayer(ctx, name); err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, Resp{Code: transport.OK, Data: data})
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(httpStatus(code), Resp{Code: code, Msg: msg})
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := handler.HandleError(ctx, err)
	h.fail(c, code, msg)
}

func httpStatus(code int) int {
	switch code {
	case transport.OK:
		return nethttp.StatusOK
	case transport.InvalidParam:
		return nethttp.StatusBadRequest
	case transport.NotFound:
		return nethttp.StatusNotFound
	case transport.Conflict:
		return nethttp.StatusConflict
	case transport.Rejected:
		return nethttp.StatusForbidden
	default:
		return nethttp.StatusInternalServerError
	}
}
