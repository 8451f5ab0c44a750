package ws

import (
	"context"

	"TileArmy/internal/shared/transport"
	"TileArmy/modules/kit/logx"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Router 按入站帧的 type 字段分发。
type Router struct {
	handlers map[string]HandlerFunc
	log      logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.Nop()
	}
	return &Router{
		handlers: make(map[string]HandlerFunc),
		log:      l,
	}
}

func (r *Router) Handle(msgType string, h HandlerFunc) {
	r.handlers[msgType] = h
}

// Dispatch 执行 handler 并写访问日志。未注册的 type 视为畸形消息：不回复，只记 debug。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	parent := context.Background()
	if req != nil && req.Conn != nil {
		parent = req.Conn.Context()
	}
	action := "WS unknown"
	if req != nil && req.Type != "" {
		action = "WS " + req.Type
	}
	ctx := transport.NewContext(parent, action)
	// 先置系统错误，避免 handler 漏设时出现“成功假象”
	resp.Code = transport.SystemError
	defer r.writeAccessLog(ctx, resp)

	if req == nil || req.Type == "" {
		resp.Code = transport.InvalidParam
		resp.Reason = "missing type"
		return
	}
	h := r.handlers[req.Type]
	if h == nil {
		resp.Code = transport.InvalidParam
		resp.Reason = "unknown type"
		r.log.WithContext(ctx).Debug("ws unknown message type", zap.String("type", req.Type))
		return
	}
	h(ctx, req, resp)
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	transport.SetBizCode(ctx, transport.BizCode(resp.Code))
	transport.SetErrorReason(ctx, resp.Reason)
	transport.WriteAccessLog(ctx, r.log)
}

// Registrar 由业务模块实现，向 Router 注册自己的消息类型。
type Registrar interface {
	WsRegister(r *Router)
}
