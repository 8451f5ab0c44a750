package service

import "TileArmy/internal/shared/utils"

// rechargeEnergy 扣除移动能耗并按固定速率回充，结果夹在 [0, EnergyMax]。
func (s *Simulation) rechargeEnergy(spent map[string]float64, dt float64) {
	for _, p := range s.world.Players() {
		e := p.Energy - spent[p.ID] + s.cfg.EnergyRecharge*dt
		p.Energy = utils.Clamp(e, 0, s.cfg.EnergyMax)
	}
}
