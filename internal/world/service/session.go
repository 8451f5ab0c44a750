package service

import (
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/entity"

	"go.uber.org/zap"
)

// Join 处理名字 name 的连接：已存在的玩家视为重连，立即清除离线状态；
// 否则创建玩家与主基地。返回是否新建。
func (s *Simulation) Join(name string) (*entity.Player, bool, error) {
	if name == "" {
		return nil, false, ErrNameRequired
	}
	if p, ok := s.world.Player(name); ok {
		wasOffline := p.Offline
		p.DisconnectedAt = nil
		p.Offline = false
		s.log.Info("player reconnected", zap.String("player", name), zap.Bool("was_offline", wasOffline))
		return p, false, nil
	}

	p := &entity.Player{
		ID:     name,
		Color:  s.randomColor(),
		Ore:    s.cfg.StartOre,
		Lumber: s.cfg.StartLumber,
		Stone:  s.cfg.StartStone,
		Energy: s.cfg.EnergyMax,
	}
	s.world.AddPlayer(p)

	x, y := s.tilePos(baseMargin)
	home := &entity.Base{ID: s.newID(), X: x, Y: y, Owner: name}
	s.resetLevel(home, 1)
	s.world.AddBase(home)

	s.log.Info("player joined", zap.String("player", name), zap.String("home_base", home.ID))
	return p, true, nil
}

// Disconnect 记录断线时间；玩家与其载具、基地都保留。
func (s *Simulation) Disconnect(name string) {
	p, ok := s.world.Player(name)
	if !ok {
		return
	}
	now := s.clock()
	p.DisconnectedAt = &now
	s.log.Info("player disconnected", zap.String("player", name))
}

// RemovePlayer 显式删除玩家：载具删除，基地变回中立。
func (s *Simulation) RemovePlayer(name string) error {
	if _, ok := s.world.Player(name); !ok {
		return ErrPlayerNotFound
	}
	freed := s.world.RemovePlayer(name)
	for _, b := range freed {
		s.resetNeutral(b)
	}
	for _, b := range s.world.Bases() {
		if b.LastAttacker == name {
			b.LastAttacker = ""
		}
	}
	s.log.Info("player removed", zap.String("player", name), zap.Int("bases_freed", len(freed)))
	return nil
}

func (s *Simulation) PlayerView(name string) (dto.PlayerView, error) {
	p, ok := s.world.Player(name)
	if !ok {
		return dto.PlayerView{}, ErrPlayerNotFound
	}
	return dto.FromPlayer(s.world, p), nil
}
