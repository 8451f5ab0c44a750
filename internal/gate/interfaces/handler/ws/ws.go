package ws

import (
	"context"

	"TileArmy/internal/gate/interfaces/handler"
	"TileArmy/internal/shared/transport"
	"TileArmy/internal/shared/transport/ws"
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/service"

	"go.uber.org/zap"
)

type WsHandler struct {
	gate *handler.Gate
}

func NewWsHandler(g *handler.Gate) *WsHandler {
	return &WsHandler{gate: g}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	r.Handle(service.SpawnVehicle{}.Kind(), command[service.SpawnVehicle](h))
	r.Handle(service.MoveVehicle{}.Kind(), command[service.MoveVehicle](h))
	r.Handle(service.HarvestResource{}.Kind(), command[service.HarvestResource](h))
	r.Handle(service.UpgradeBase{}.Kind(), command[service.UpgradeBase](h))
}

// Accept 是连接握手：名字被占用等错误会以 error 帧下发并关闭连接。
func (h *WsHandler) Accept(ctx context.Context, name string, conn ws.WSConn) error {
	return h.gate.GateService.Enter(ctx, name, conn)
}

// command 解码 payload 为 C 并交给世界执行。解码失败视为畸形消息，不回复。
func command[C service.Command](h *WsHandler) ws.HandlerFunc {
	return func(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
		if wsReq == nil || wsReq.Conn == nil || wsResp == nil {
			return
		}
		name, _ := wsReq.Conn.GetProperty(ws.ConnKeyName).(string)

		var cmd C
		if err := ws.BindJSON(wsReq, &cmd); err != nil {
			wsResp.Code = transport.InvalidParam
			wsResp.Reason = "malformed payload"
			h.gate.Log.WithContext(ctx).Debug("ws malformed command", zap.String("type", wsReq.Type), zap.Error(err))
			return
		}

		msg, err := h.gate.GateService.Command(ctx, name, cmd)
		if err != nil {
			code, text := handler.HandleError(ctx, err)
			wsResp.Code = code
			wsResp.Reply = dto.NewNotice(false, text)
			return
		}
		wsResp.Code = transport.OK
		if msg != "" {
			wsResp.Reply = dto.NewNotice(true, msg)
		}
	}
}
