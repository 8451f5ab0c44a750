package actors

import (
	"time"

	"TileArmy/internal/shared/metrics"
	"TileArmy/internal/shared/session"
	"TileArmy/internal/world/delta"
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/service"
	"TileArmy/modules/kit/errx"
	"TileArmy/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// WorldActor 串行执行 tick 与所有玩家请求，Simulation 只在这里被访问。
type WorldActor struct {
	state      State
	sim        *service.Simulation
	sessions   session.Manager
	dispatcher *Dispatcher
	tickEvery  time.Duration
	tickStop   chan struct{}
	metrics    *metrics.Game
	log        logx.Logger
}

type Config struct {
	// TickEvery<=0 时不启动自动 tick，只能通过 HWStep 推进
	TickEvery time.Duration
	Metrics   *metrics.Game
	Logger    logx.Logger
}

type tick struct{}

func (tick) NotInfluenceReceiveTimeout() {}

func NewWorldActor(sim *service.Simulation, sessions session.Manager, cfg Config) *WorldActor {
	l := cfg.Logger
	if l == nil {
		l = logx.Nop()
	}
	return &WorldActor{
		state:      None,
		sim:        sim,
		sessions:   sessions,
		dispatcher: NewDispatcher(),
		tickEvery:  cfg.TickEvery,
		metrics:    cfg.Metrics,
		log:        l,
	}
}

func (p *WorldActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopTickLoop()
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopTickLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopTickLoop()
		p.state = Init
		return
	case tick:
		if p.state != Online {
			return
		}
		p.step()
		return
	case WorldMessage:
		if p.state != Online {
			ctx.Respond(fail(errx.ErrUnavailable.WithMsg("world not online")))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *WorldActor) init(ctx actor.Context) {
	if p.sim == nil || p.sessions == nil {
		p.log.Error("world actor missing simulation or session manager")
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}
	p.state = Online
	p.startTickLoop(ctx)
	p.log.Info("world online", zap.Duration("tick", p.tickEvery))
}

// step 推进一个 tick，有变化且到了广播间隔时推送 update。
func (p *WorldActor) step() []delta.Record {
	records := p.sim.Tick()
	if len(records) == 0 {
		return nil
	}
	sent := p.sessions.Broadcast(dto.NewUpdate(records))
	p.metrics.Broadcast(len(records))
	p.log.Debug("world broadcast", zap.Int("entities", len(records)), zap.Int("conns", sent))
	return records
}

func (p *WorldActor) Simulation() *service.Simulation {
	return p.sim
}

func (p *WorldActor) startTickLoop(ctx actor.Context) {
	if p.tickStop != nil || p.tickEvery <= 0 {
		return
	}
	p.tickStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, tick{})
			case <-stop:
				return
			}
		}
	}(p.tickStop, p.tickEvery)
}

func (p *WorldActor) stopTickLoop() {
	if p.tickStop == nil {
		return
	}
	close(p.tickStop)
	p.tickStop = nil
}
