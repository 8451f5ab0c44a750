package service

import (
	"math"

	"TileArmy/internal/world/entity"
)

// arriveEpsilon 以内视为已到达目标点
const arriveEpsilon = 0.5

// claimResources 按 arena 顺序扫描：每个资源点只允许一个载具占用，
// 后来者放弃目标；目标缺失或已采空的载具也放弃目标。
func (s *Simulation) claimResources() map[string]string {
	claimed := make(map[string]string)
	for _, v := range s.world.Vehicles() {
		if v.TargetRes == "" {
			continue
		}
		r, ok := s.world.Resource(v.TargetRes)
		if !ok || r.Depleted() {
			dropTarget(v)
			continue
		}
		if _, taken := claimed[r.ID]; taken {
			dropTarget(v)
			continue
		}
		claimed[r.ID] = v.ID
	}
	return claimed
}

func dropTarget(v *entity.Vehicle) {
	v.TargetRes = ""
	if v.State == entity.Harvesting {
		v.State = entity.Idle
	}
}

// steerVehicles 推进每个载具的状态机，并更新移动目标点。
func (s *Simulation) steerVehicles(claimed map[string]string) {
	for _, v := range s.world.Vehicles() {
		p, ok := s.world.Player(v.Owner)
		if !ok {
			continue
		}
		switch v.State {
		case entity.Idle:
			s.steerIdle(p, v, claimed)
		case entity.Returning:
			s.steerReturning(p, v)
		case entity.Unloading:
			v.UnloadTimer -= float64(s.cfg.TickMS)
			if v.UnloadTimer <= 0 {
				s.flushCargo(p, v)
			}
		}
	}
}

func (s *Simulation) steerIdle(p *entity.Player, v *entity.Vehicle, claimed map[string]string) {
	if v.TargetRes == "" && s.canAutoTarget(p, v) {
		if r := s.nearestFreeResource(v, claimed); r != nil {
			v.TargetRes = r.ID
			claimed[r.ID] = v.ID
		}
	}
	if v.TargetRes == "" {
		// 附近没有可采的同类资源时带货返航
		if v.Carrying > 0 && (v.Free() <= 0 || s.canAutoTarget(p, v)) {
			v.State = entity.Returning
		}
		return
	}

	r, ok := s.world.Resource(v.TargetRes)
	if !ok {
		v.TargetRes = ""
		return
	}
	if v.Free() <= 0 {
		v.State = entity.Returning
		return
	}
	v.TX, v.TY = r.X, r.Y
	if entity.Dist(v.X, v.Y, r.X, r.Y) <= s.cfg.ResourceRadius {
		v.State = entity.Harvesting
	}
}

// canAutoTarget：空闲且已停在目标点、玩家在线、仍有载量且能采集。
func (s *Simulation) canAutoTarget(p *entity.Player, v *entity.Vehicle) bool {
	if p.Offline || v.HarvestRate <= 0 || v.Free() <= 0 {
		return false
	}
	return entity.Dist(v.X, v.Y, v.TX, v.TY) <= arriveEpsilon
}

// nearestFreeResource 选最近的未占用资源点。带货时只找同类；
// 设置了偏好类型时不限距离，否则限制在 AutoTargetRadius 内。
func (s *Simulation) nearestFreeResource(v *entity.Vehicle, claimed map[string]string) *entity.Resource {
	var (
		best  *entity.Resource
		bestD = math.Inf(1)
	)
	for _, r := range s.world.Resources() {
		if r.Depleted() {
			continue
		}
		if _, taken := claimed[r.ID]; taken {
			continue
		}
		if v.Carrying > 0 && r.Type != v.CarryType {
			continue
		}
		if v.PreferType != "" && r.Type != v.PreferType {
			continue
		}
		d := entity.Dist(v.X, v.Y, r.X, r.Y)
		if v.PreferType == "" && d > s.cfg.AutoTargetRadius {
			continue
		}
		if d < bestD {
			best, bestD = r, d
		}
	}
	return best
}

func (s *Simulation) steerReturning(p *entity.Player, v *entity.Vehicle) {
	b := s.nearestOwnedBase(p, v.X, v.Y)
	if b == nil {
		// 没有基地可回，原地待命
		v.TX, v.TY = v.X, v.Y
		v.TargetBase = ""
		return
	}
	v.TargetBase = b.ID
	v.TX, v.TY = b.X, b.Y
	if entity.Dist(v.X, v.Y, b.X, b.Y) >= s.cfg.DockRadius {
		return
	}
	v.State = entity.Unloading
	v.UnloadTimer = float64(v.UnloadTime)
	if v.UnloadTimer <= 0 {
		s.flushCargo(p, v)
	}
}

func (s *Simulation) nearestOwnedBase(p *entity.Player, x, y float64) *entity.Base {
	var (
		best  *entity.Base
		bestD = math.Inf(1)
	)
	for _, id := range p.Bases {
		b, ok := s.world.Base(id)
		if !ok || b.Owner != p.ID {
			continue
		}
		if d := entity.Dist(x, y, b.X, b.Y); d < bestD {
			best, bestD = b, d
		}
	}
	return best
}

func (s *Simulation) atOwnedBase(p *entity.Player, v *entity.Vehicle) bool {
	b := s.nearestOwnedBase(p, v.X, v.Y)
	return b != nil && entity.Dist(v.X, v.Y, b.X, b.Y) < s.cfg.DockRadius
}

// flushCargo 把货物计入玩家货币，载具回到空闲。
func (s *Simulation) flushCargo(p *entity.Player, v *entity.Vehicle) {
	if cur := p.Currency(v.CarryType); cur != nil {
		*cur += v.Carrying
	}
	v.ClearCargo()
	v.State = entity.Idle
	v.UnloadTimer = 0
	v.TargetBase = ""
}

// moveVehicles 按速度向目标点移动，返回每个玩家本 tick 的移动能耗。
func (s *Simulation) moveVehicles(dt float64) map[string]float64 {
	spent := make(map[string]float64)
	for _, v := range s.world.Vehicles() {
		d := entity.Dist(v.X, v.Y, v.TX, v.TY)
		if d == 0 {
			continue
		}
		step := v.Speed * dt
		if step <= 0 {
			continue
		}
		if step >= d {
			v.X, v.Y = v.TX, v.TY
			step = d
		} else {
			v.X += (v.TX - v.X) / d * step
			v.Y += (v.TY - v.Y) / d * step
		}
		spent[v.Owner] += step * v.EnergyCost
	}
	return spent
}

// harvest 处理采集中的载具：装满或采空后返航，离开范围则回到空闲继续靠近。
func (s *Simulation) harvest(dt float64) {
	for _, v := range s.world.Vehicles() {
		if v.State != entity.Harvesting {
			continue
		}
		r, ok := s.world.Resource(v.TargetRes)
		if !ok || r.Depleted() {
			v.TargetRes = ""
			s.finishHarvest(v)
			continue
		}
		if v.CarryType != "" && v.CarryType != r.Type {
			v.TargetRes = ""
			s.finishHarvest(v)
			continue
		}
		if entity.Dist(v.X, v.Y, r.X, r.Y) > s.cfg.ResourceRadius {
			v.State = entity.Idle
			v.TX, v.TY = r.X, r.Y
			continue
		}

		take := math.Min(v.HarvestRate*dt, math.Min(v.Free(), r.Amount))
		if take > 0 {
			v.CarryType = r.Type
			if take >= v.Free() {
				v.Carrying = v.Capacity
			} else {
				v.Carrying += take
			}
			if take >= r.Amount {
				r.Amount = 0
			} else {
				r.Amount -= take
			}
		}
		if r.Depleted() {
			v.TargetRes = ""
			s.finishHarvest(v)
		} else if v.Free() <= 0 {
			s.finishHarvest(v)
		}
	}
}

func (s *Simulation) finishHarvest(v *entity.Vehicle) {
	if v.Carrying > 0 {
		v.State = entity.Returning
	} else {
		v.State = entity.Idle
	}
}
