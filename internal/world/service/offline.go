package service

import (
	"time"

	"TileArmy/internal/world/entity"

	"go.uber.org/zap"
)

// markOffline 把断线超时的玩家标记为离线，并让其载具回港停靠。
func (s *Simulation) markOffline(now time.Time) {
	timeout := s.cfg.OfflineTimeout()
	for _, p := range s.world.Players() {
		if p.DisconnectedAt != nil && !p.Offline && now.Sub(*p.DisconnectedAt) >= timeout {
			p.Offline = true
			s.log.Info("player offline", zap.String("player", p.ID))
		}
		if p.Offline {
			s.dock(p)
		}
	}
}

// dock 清掉离线玩家所有载具的采集目标，并让未在卸货的载具返航；
// 已停在己方基地的空车不动，卸货中的载具保留计时。
func (s *Simulation) dock(p *entity.Player) {
	for _, v := range s.world.PlayerVehicles(p) {
		v.TargetRes = ""
		v.PreferType = ""
		if v.State == entity.Unloading || v.State == entity.Returning {
			continue
		}
		if v.Carrying <= 0 && s.atOwnedBase(p, v) {
			continue
		}
		v.State = entity.Returning
	}
}
