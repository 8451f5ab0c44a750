package actors

import (
	"TileArmy/internal/shared/transport/ws"
	"TileArmy/internal/world/service"
	"TileArmy/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// ErrConnClosed 连接在 join 被处理前已关闭，或 init 未能入队。
var ErrConnClosed = errx.NewSys("CONN_CLOSED", "Connection closed")

type WorldHandler struct{}

var WH = &WorldHandler{}

func (h *WorldHandler) HandleJoin(ctx actor.Context, p *WorldActor, req *HWJoin) {
	if req.Name == "" {
		ctx.Respond(fail(service.ErrNameRequired))
		return
	}
	// ask 超时后连接可能已被关闭，这里不能再绑定
	if req.Conn == nil || closed(req.Conn) {
		ctx.Respond(fail(ErrConnClosed))
		return
	}
	if !p.sessions.Bind(req.Name, req.Conn) {
		ctx.Respond(fail(service.ErrNameInUse))
		return
	}
	_, created, err := p.sim.Join(req.Name)
	if err != nil {
		p.sessions.Unbind(req.Name, req.Conn)
		ctx.Respond(fail(err))
		return
	}
	// init 先于任何 update 入队
	if !req.Conn.Push(p.sim.Init(req.Name)) {
		p.sessions.Unbind(req.Name, req.Conn)
		p.sim.Disconnect(req.Name)
		p.log.Info("join dropped: init not delivered", zap.String("player", req.Name))
		ctx.Respond(fail(ErrConnClosed))
		return
	}
	p.metrics.Connected(1)
	ctx.Respond(&WHJoin{Created: created})
}

func closed(conn ws.WSConn) bool {
	select {
	case <-conn.Done():
		return true
	default:
		return false
	}
}

func (h *WorldHandler) HandleLeave(ctx actor.Context, p *WorldActor, req *HWLeave) {
	if !p.sessions.Unbind(req.Name, req.Conn) {
		p.log.Debug("stale disconnect ignored", zap.String("player", req.Name))
		ctx.Respond(&WHLeave{})
		return
	}
	p.sim.Disconnect(req.Name)
	p.metrics.Connected(-1)
	ctx.Respond(&WHLeave{Disconnected: true})
}

func (h *WorldHandler) HandleCommand(ctx actor.Context, p *WorldActor, req *HWCommand) {
	msg, err := p.sim.Apply(req.Name, req.Cmd)
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(&WHCommand{Msg: msg})
}

func (h *WorldHandler) HandleRemovePlayer(ctx actor.Context, p *WorldActor, req *HWRemovePlayer) {
	if err := p.sim.RemovePlayer(req.Name); err != nil {
		ctx.Respond(fail(err))
		return
	}
	kicked := p.sessions.Kick(req.Name)
	if kicked {
		p.metrics.Connected(-1)
	}
	ctx.Respond(&WHRemovePlayer{Kicked: kicked})
}

func (h *WorldHandler) HandlePlayerView(ctx actor.Context, p *WorldActor, req *HWPlayerView) {
	view, err := p.sim.PlayerView(req.Name)
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	ctx.Respond(&WHPlayerView{View: view})
}

func (h *WorldHandler) HandleStep(ctx actor.Context, p *WorldActor, _ *HWStep) {
	ctx.Respond(&WHStep{Records: p.step()})
}
