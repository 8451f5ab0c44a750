package service

import (
	"math/rand/v2"
	"time"

	"TileArmy/internal/shared/gameconfig"
	"TileArmy/internal/shared/metrics"
	"TileArmy/internal/shared/utils"
	"TileArmy/internal/world/delta"
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/entity"
	"TileArmy/modules/kit/logx"
)

type Clock func() time.Time

// Simulation 持有整局世界状态。所有方法只能由同一个 goroutine（world actor）调用。
type Simulation struct {
	cfg     *gameconfig.Config
	world   *entity.World
	delta   *delta.Engine
	clock   Clock
	rnd     *rand.Rand
	newID   func() string
	log     logx.Logger
	metrics *metrics.Game

	// seeded 之后才会周期性补充中立基地
	seeded          bool
	lastNeutralSeed time.Time
}

type Option func(*Simulation)

func WithClock(c Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) { s.rnd = r }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Simulation) { s.newID = f }
}

func WithLogger(l logx.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

func WithMetrics(m *metrics.Game) Option {
	return func(s *Simulation) { s.metrics = m }
}

func New(cfg *gameconfig.Config, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		world: entity.NewWorld(),
		delta: delta.NewEngine(cfg.BroadcastInterval()),
		clock: time.Now,
		newID: utils.NewID,
		log:   logx.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		now := uint64(s.clock().UnixNano())
		s.rnd = rand.New(rand.NewPCG(now, now>>1|1))
	}
	return s
}

func (s *Simulation) World() *entity.World { return s.world }

func (s *Simulation) Config() *gameconfig.Config { return s.cfg }

func (s *Simulation) Now() time.Time { return s.clock() }

// Init 构造发给 name 的全量 init 消息。
func (s *Simulation) Init(name string) *dto.Init {
	return dto.NewInit(name, s.cfg, s.world)
}

// Pending 返回相对上次广播尚未发送的变化。
func (s *Simulation) Pending() []delta.Record {
	return s.delta.Pending(s.world)
}

// LastBroadcast 返回上次广播的快照。
func (s *Simulation) LastBroadcast() delta.Snapshot {
	return s.delta.Last()
}

// tilePos 在 [margin, size-margin) 内取随机坐标并对齐到格子。
func (s *Simulation) tilePos(margin float64) (float64, float64) {
	x := utils.Snap(utils.Between(s.rnd, margin, s.cfg.MapW-margin), s.cfg.TileSize)
	y := utils.Snap(utils.Between(s.rnd, margin, s.cfg.MapH-margin), s.cfg.TileSize)
	return x, y
}
