package service

import (
	"fmt"
	"time"

	"TileArmy/internal/world/entity"

	"go.uber.org/zap"
)

const (
	resourceMargin = 80
	baseMargin     = 200
	// neutralPlacementTries 次都找不到空位时本轮放弃
	neutralPlacementTries = 10
)

// Seed 生成初始资源点，并开启中立基地的周期补充。只在世界启动时调用一次。
func (s *Simulation) Seed() {
	for i := 0; i < s.cfg.ResourceCount; i++ {
		x, y := s.tilePos(resourceMargin)
		s.world.AddResource(&entity.Resource{
			ID:     s.newID(),
			Type:   entity.ResourceTypes[s.rnd.IntN(len(entity.ResourceTypes))],
			X:      x,
			Y:      y,
			Amount: s.cfg.ResourceAmount,
		})
	}
	s.seeded = true
	s.lastNeutralSeed = s.clock()
	s.log.Info("world seeded", zap.Int("resources", s.cfg.ResourceCount))
}

func (s *Simulation) seedNeutralBase(now time.Time) {
	if !s.seeded || s.cfg.NeutralBaseMax <= 0 {
		return
	}
	if now.Sub(s.lastNeutralSeed) < s.cfg.NeutralBaseInterval() {
		return
	}
	s.lastNeutralSeed = now
	if s.world.NeutralBases() >= s.cfg.NeutralBaseMax {
		return
	}
	x, y, ok := s.freeBaseSpot()
	if !ok {
		return
	}
	b := s.newNeutralBase(x, y)
	s.world.AddBase(b)
	s.log.Debug("neutral base seeded", zap.String("base", b.ID), zap.Float64("x", x), zap.Float64("y", y))
}

// freeBaseSpot 找一个与所有基地保持攻击距离以外的位置。
func (s *Simulation) freeBaseSpot() (float64, float64, bool) {
	for i := 0; i < neutralPlacementTries; i++ {
		x, y := s.tilePos(baseMargin)
		clear := true
		for _, b := range s.world.Bases() {
			if entity.Dist(x, y, b.X, b.Y) < 2*s.cfg.BaseAttackRange {
				clear = false
				break
			}
		}
		if clear {
			return x, y, true
		}
	}
	return 0, 0, false
}

func (s *Simulation) newNeutralBase(x, y float64) *entity.Base {
	b := &entity.Base{ID: s.newID(), X: x, Y: y}
	s.resetNeutral(b)
	return b
}

// resetNeutral 把基地恢复为中立属性并清空生产队列。
func (s *Simulation) resetNeutral(b *entity.Base) {
	b.Owner = ""
	b.HP = s.cfg.NeutralBaseHP
	b.Damage = s.cfg.NeutralBaseDamage
	b.ROF = s.cfg.NeutralBaseROF
	b.Level = 1
	b.Queue = nil
	b.LastAttacker = ""
}

// resetLevel 把基地重置为 level 级的满属性。
func (s *Simulation) resetLevel(b *entity.Base, level int) {
	b.Level = level
	b.HP = s.cfg.LevelHP(level)
	b.Damage = s.cfg.LevelDamage(level)
	b.ROF = s.cfg.BaseROF
}

func (s *Simulation) randomColor() string {
	return fmt.Sprintf("hsl(%d,70%%,50%%)", s.rnd.IntN(360))
}
