package service

import (
	"TileArmy/internal/world/entity"

	"go.uber.org/zap"
)

// resolveCombat 结算本 tick 的互相攻击：载具打射程内的非己方基地，
// 基地（含中立）打射程内的非己方载具。伤害按 damage*rof*dt 连续结算。
func (s *Simulation) resolveCombat(dt float64) {
	rng := s.cfg.BaseAttackRange
	vehicles := s.world.Vehicles()
	bases := s.world.Bases()

	for _, v := range vehicles {
		dmg := v.Damage * v.ROF * dt
		if dmg <= 0 {
			continue
		}
		for _, b := range bases {
			if b.Owner == v.Owner || entity.Dist(v.X, v.Y, b.X, b.Y) >= rng {
				continue
			}
			b.HP -= dmg
			b.LastAttacker = v.Owner
		}
	}

	for _, b := range bases {
		dmg := b.Damage * b.ROF * dt
		if dmg <= 0 {
			continue
		}
		for _, v := range vehicles {
			if v.Owner == b.Owner || entity.Dist(v.X, v.Y, b.X, b.Y) >= rng {
				continue
			}
			v.HP -= dmg
		}
	}
}

func (s *Simulation) removeDestroyed() {
	for _, v := range s.world.Vehicles() {
		if v.HP > 0 {
			continue
		}
		s.world.RemoveVehicle(v.ID)
		s.log.Debug("vehicle destroyed", zap.String("vehicle", v.ID), zap.String("owner", v.Owner))
	}
}

// resolveCaptures 把血量归零的基地交给最后的攻击者，重置为 1 级并清空队列。
func (s *Simulation) resolveCaptures() {
	for _, b := range s.world.Bases() {
		if b.HP > 0 || b.LastAttacker == "" {
			continue
		}
		attacker := b.LastAttacker
		if _, ok := s.world.Player(attacker); !ok {
			b.LastAttacker = ""
			continue
		}
		prev := b.Owner
		s.world.TransferBase(b, attacker)
		s.resetLevel(b, 1)
		b.Queue = nil
		b.LastAttacker = ""

		s.metrics.Captured(prev == "")
		s.log.Info("base captured",
			zap.String("base", b.ID),
			zap.String("from", prev),
			zap.String("to", attacker),
		)
	}
}
