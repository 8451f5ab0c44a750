package app

import (
	"context"

	"TileArmy/internal/shared/transport/ws"
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/service"
	"TileArmy/modules/kit/logx"

	"go.uber.org/zap"
)

// GateService 把连接与指令转交给世界 actor，并统一包装技术错误。
type GateService struct {
	world WorldRuntime
	log   logx.Logger
}

func NewGateService(world WorldRuntime, l logx.Logger) *GateService {
	if l == nil {
		l = logx.Nop()
	}
	return &GateService{world: world, log: l}
}

// Enter 接纳连接，并在连接关闭时通知世界。
func (g *GateService) Enter(ctx context.Context, name string, conn ws.WSConn) error {
	if g.world == nil {
		return ErrUnavailable.WithReason(ReasonWorldUnavailable)
	}
	created, err := g.world.Join(ctx, name, conn)
	if err != nil {
		// 技术错误时 actor 可能稍后仍绑定了该连接，由 watch 在关闭时补发 leave
		if !IsBizRejectedError(err) {
			go g.watch(name, conn)
		}
		return wrapTechErr(err)
	}
	g.log.WithContext(ctx).Info("player entered", zap.Bool("created", created))

	go g.watch(name, conn)
	return nil
}

func (g *GateService) watch(name string, conn ws.WSConn) {
	<-conn.Done()
	ctx := conn.Context()
	ok, err := g.world.Leave(context.WithoutCancel(ctx), name, conn)
	if err != nil {
		g.log.WithContext(ctx).Error("player leave failed", zap.Error(err))
		return
	}
	g.log.WithContext(ctx).Info("player left", zap.Bool("current", ok))
}

func (g *GateService) Command(ctx context.Context, name string, cmd service.Command) (string, error) {
	if g.world == nil {
		return "", ErrUnavailable.WithReason(ReasonWorldUnavailable)
	}
	msg, err := g.world.Command(ctx, name, cmd)
	return msg, wrapTechErr(err)
}

func (g *GateService) RemovePlayer(ctx context.Context, name string) error {
	if g.world == nil {
		return ErrUnavailable.WithReason(ReasonWorldUnavailable)
	}
	return wrapTechErr(g.world.RemovePlayer(ctx, name))
}

func (g *GateService) PlayerView(ctx context.Context, name string) (dto.PlayerView, error) {
	if g.world == nil {
		return dto.PlayerView{}, ErrUnavailable.WithReason(ReasonWorldUnavailable)
	}
	view, err := g.world.PlayerView(ctx, name)
	return view, wrapTechErr(err)
}
