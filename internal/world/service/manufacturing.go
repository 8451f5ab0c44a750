package service

import (
	"time"

	"TileArmy/internal/shared/utils"
	"TileArmy/internal/world/entity"

	"go.uber.org/zap"
)

// ProcessManufacturing 取出所有 ReadyAt 已到的订单并生成载具，未到期的保持原顺序。
func (s *Simulation) ProcessManufacturing(now time.Time) {
	nowMS := now.UnixMilli()
	for _, b := range s.world.Bases() {
		if len(b.Queue) == 0 {
			continue
		}
		pending := b.Queue[:0]
		var ready []entity.BuildOrder
		for _, o := range b.Queue {
			if o.ReadyAt <= nowMS {
				ready = append(ready, o)
			} else {
				pending = append(pending, o)
			}
		}
		if len(pending) == 0 {
			b.Queue = nil
		} else {
			b.Queue = pending
		}
		for _, o := range ready {
			s.spawnFromOrder(b, o)
		}
	}
}

func (s *Simulation) spawnFromOrder(b *entity.Base, o entity.BuildOrder) {
	vt, ok := s.cfg.VehicleType(o.VType)
	if !ok || b.Owner == "" {
		s.log.Debug("build order dropped", zap.String("base", b.ID), zap.String("type", o.VType))
		return
	}
	x := utils.Clamp(b.X+s.cfg.TileSize, 0, s.cfg.MapW)
	y := utils.Clamp(b.Y, 0, s.cfg.MapH)
	v := &entity.Vehicle{
		ID:          s.newID(),
		Owner:       b.Owner,
		Type:        o.VType,
		Speed:       vt.Speed,
		Capacity:    vt.Capacity,
		EnergyCost:  vt.EnergyCost,
		HP:          vt.HP,
		Damage:      vt.Damage,
		ROF:         vt.ROF,
		HarvestRate: vt.HarvestRate,
		UnloadTime:  s.cfg.UnloadTime(vt),
		X:           x,
		Y:           y,
		TX:          x,
		TY:          y,
		State:       entity.Idle,
	}
	if !s.world.AddVehicle(v) {
		s.log.Debug("build order dropped", zap.String("base", b.ID), zap.String("owner", b.Owner))
		return
	}
	s.log.Debug("vehicle built", zap.String("vehicle", v.ID), zap.String("owner", v.Owner), zap.String("type", v.Type))
}
