package service

import (
	"TileArmy/internal/shared/utils"
	"TileArmy/internal/world/entity"
)

// Command 是客户端可发起的玩家指令。
type Command interface {
	Kind() string
}

type SpawnVehicle struct {
	BaseID string `json:"baseId"`
	VType  string `json:"vType"`
}

type MoveVehicle struct {
	VehicleID string  `json:"vehicleId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type HarvestResource struct {
	VehicleID  string `json:"vehicleId"`
	ResourceID string `json:"resourceId"`
}

type UpgradeBase struct {
	BaseID string `json:"baseId"`
}

func (SpawnVehicle) Kind() string    { return "spawnVehicle" }
func (MoveVehicle) Kind() string     { return "moveVehicle" }
func (HarvestResource) Kind() string { return "harvestResource" }
func (UpgradeBase) Kind() string     { return "upgradeBase" }

// Apply 执行 playerID 的指令。返回的 msg 仅在成功且需要提示时非空；
// 失败时 err 的 Msg() 即提示文案。
func (s *Simulation) Apply(playerID string, cmd Command) (msg string, err error) {
	switch c := cmd.(type) {
	case SpawnVehicle:
		msg, err = s.SpawnVehicle(playerID, c.BaseID, c.VType)
	case MoveVehicle:
		err = s.MoveVehicle(playerID, c.VehicleID, c.X, c.Y)
	case HarvestResource:
		err = s.HarvestResource(playerID, c.VehicleID, c.ResourceID)
	case UpgradeBase:
		msg, err = s.UpgradeBase(playerID, c.BaseID)
	default:
		err = ErrUnknownCommand
	}
	if cmd != nil {
		s.metrics.Command(cmd.Kind(), err == nil)
	}
	return msg, err
}

func (s *Simulation) ownedVehicle(playerID, vehicleID string) (*entity.Vehicle, error) {
	v, ok := s.world.Vehicle(vehicleID)
	if !ok {
		return nil, ErrVehicleNotFound.WithReason(ReasonVehicleMissing)
	}
	if v.Owner != playerID {
		return nil, ErrVehicleNotFound.WithReason(ReasonForeignVehicle)
	}
	return v, nil
}

// MoveVehicle 手动移动：目标点夹到地图内，放弃采集目标与偏好。
func (s *Simulation) MoveVehicle(playerID, vehicleID string, x, y float64) error {
	v, err := s.ownedVehicle(playerID, vehicleID)
	if err != nil {
		return err
	}
	v.TX = utils.Clamp(x, 0, s.cfg.MapW)
	v.TY = utils.Clamp(y, 0, s.cfg.MapH)
	v.TargetRes = ""
	v.PreferType = ""
	v.TargetBase = ""
	v.UnloadTimer = 0
	v.State = entity.Idle
	return nil
}

// HarvestResource 指定采集目标，同时把偏好类型设为该资源类型。
func (s *Simulation) HarvestResource(playerID, vehicleID, resourceID string) error {
	v, err := s.ownedVehicle(playerID, vehicleID)
	if err != nil {
		return err
	}
	r, ok := s.world.Resource(resourceID)
	if !ok {
		return ErrResourceNotFound
	}
	if r.Depleted() {
		return ErrResourceDepleted
	}
	if v.Capacity <= 0 {
		return ErrCannotHarvest.WithReason(ReasonNoCapacity)
	}
	if v.HarvestRate <= 0 {
		return ErrCannotHarvest.WithReason(ReasonNoHarvestRate)
	}
	if v.Carrying > 0 && v.CarryType != r.Type {
		return ErrCargoMismatch
	}
	v.PreferType = r.Type
	v.TargetRes = r.ID
	v.TargetBase = ""
	v.UnloadTimer = 0
	v.TX, v.TY = r.X, r.Y
	v.State = entity.Idle
	return nil
}
