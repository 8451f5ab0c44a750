package service

import (
	"fmt"
	"math"
	"time"

	"TileArmy/internal/world/entity"

	"go.uber.org/zap"
)

// ownedBase 校验玩家存在且拥有该基地。
func (s *Simulation) ownedBase(playerID, baseID string) (*entity.Player, *entity.Base, error) {
	p, ok := s.world.Player(playerID)
	if !ok {
		return nil, nil, ErrPlayerNotFound
	}
	b, ok := s.world.Base(baseID)
	if !ok {
		return nil, nil, ErrBaseNotFound
	}
	if b.Owner != playerID {
		if b.Neutral() {
			return nil, nil, ErrNotBaseOwner.WithReason(ReasonNeutralBase)
		}
		return nil, nil, ErrNotBaseOwner.WithReason(ReasonForeignBase)
	}
	return p, b, nil
}

// SpawnVehicle 扣除矿石并把载具排入基地的生产队列，成功时返回提示文案。
func (s *Simulation) SpawnVehicle(playerID, baseID, vType string) (string, error) {
	p, b, err := s.ownedBase(playerID, baseID)
	if err != nil {
		return "", err
	}
	vt, ok := s.cfg.VehicleType(vType)
	if !ok {
		return "", ErrUnknownVehicleType
	}
	if !s.cfg.IsUnlocked(b.Level, vType) {
		return "", ErrVehicleLocked.WithMsg("%s requires base level %d", vType, s.cfg.UnlockLevel(vType))
	}
	if p.Ore < vt.Cost {
		return "", ErrNotEnoughOre
	}

	p.Ore -= vt.Cost
	readyAt := s.clock().Add(time.Duration(vt.BuildSeconds * float64(time.Second)))
	b.Queue = append(b.Queue, entity.BuildOrder{VType: vType, ReadyAt: readyAt.UnixMilli()})

	s.log.Debug("vehicle queued",
		zap.String("player", playerID),
		zap.String("base", baseID),
		zap.String("type", vType),
		zap.Int("queue", len(b.Queue)),
	)
	return fmt.Sprintf("%s queued (-%s ore)", vType, formatAmount(vt.Cost)), nil
}

// UpgradeBase 消耗木材与石料把基地提升一级，满血并提升攻击。
func (s *Simulation) UpgradeBase(playerID, baseID string) (string, error) {
	p, b, err := s.ownedBase(playerID, baseID)
	if err != nil {
		return "", err
	}
	lumber, stone := s.cfg.UpgradeCost(b.Level)
	if p.Lumber < lumber || p.Stone < stone {
		return "", ErrNotEnoughMaterials.WithMsg("Need %s lumber and %s stone", formatAmount(lumber), formatAmount(stone))
	}

	p.Lumber -= lumber
	p.Stone -= stone
	s.resetLevel(b, b.Level+1)

	s.log.Info("base upgraded",
		zap.String("player", playerID),
		zap.String("base", baseID),
		zap.Int("level", b.Level),
	)
	return fmt.Sprintf("Base upgraded to level %d", b.Level), nil
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
