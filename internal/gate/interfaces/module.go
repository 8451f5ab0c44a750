package interfaces

import (
	"TileArmy/internal/gate/app"
	"TileArmy/internal/gate/interfaces/handler"
	"TileArmy/internal/gate/interfaces/handler/http"
	ws2 "TileArmy/internal/gate/interfaces/handler/ws"
	"TileArmy/internal/shared/gameconfig"
	transporthttp "TileArmy/internal/shared/transport/http"
	"TileArmy/internal/shared/transport/ws"
	"TileArmy/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	wsHandler   *ws2.WsHandler
	httpHandler *http.HttpHandler
}

func New(world app.WorldRuntime, cfg *gameconfig.Config, view gameconfig.ViewConfig, l logx.Logger) *Module {
	gate := handler.NewGate(world, cfg, view, l)
	return &Module{
		wsHandler:   ws2.NewWsHandler(gate),
		httpHandler: http.NewHttpHandler(gate),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(r gin.IRouter) {
	m.httpHandler.RegisterRoutes(r)
}

// Accept 供 ws.NewServer 使用。
func (m *Module) Accept() ws.AcceptFunc {
	return m.wsHandler.Accept
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
