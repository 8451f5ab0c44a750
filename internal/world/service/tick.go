package service

import (
	"time"

	"TileArmy/internal/world/delta"
)

// Tick 推进一个固定步长：
// 离线停靠 → 生产 → 中立基地补充 → 资源占用 → 状态机 → 移动 → 采集 →
// 战斗 → 清理 → 占领 → 能量，最后按广播间隔产出增量。
func (s *Simulation) Tick() []delta.Record {
	start := time.Now()
	now := s.clock()
	dt := s.cfg.DT()

	s.markOffline(now)
	s.ProcessManufacturing(now)
	s.seedNeutralBase(now)

	claimed := s.claimResources()
	s.steerVehicles(claimed)
	spent := s.moveVehicles(dt)
	s.harvest(dt)

	s.resolveCombat(dt)
	s.removeDestroyed()
	s.resolveCaptures()
	s.rechargeEnergy(spent, dt)

	records := s.delta.Step(now, s.world)
	s.metrics.ObserveTick(time.Since(start))
	return records
}
