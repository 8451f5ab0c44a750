package service

import (
	"TileArmy/modules/kit/errx"
)

// 业务拒绝错误；Msg() 即下发给客户端的 notice 文案。
var (
	ErrNameRequired       = errx.NewBiz("NAME_REQUIRED", "Name required")
	ErrNameInUse          = errx.NewBiz("NAME_IN_USE", "Name in use")
	ErrPlayerNotFound     = errx.NewBiz("PLAYER_NOT_FOUND", "Player not found")
	ErrBaseNotFound       = errx.NewBiz("BASE_NOT_FOUND", "Base not found")
	ErrNotBaseOwner       = errx.NewBiz("NOT_BASE_OWNER", "Not your base")
	ErrUnknownVehicleType = errx.NewBiz("UNKNOWN_VEHICLE_TYPE", "Unknown vehicle type")
	ErrVehicleLocked      = errx.NewBiz("VEHICLE_LOCKED", "Vehicle type locked")
	ErrNotEnoughOre       = errx.NewBiz("NOT_ENOUGH_ORE", "Not enough ore")
	ErrNotEnoughMaterials = errx.NewBiz("NOT_ENOUGH_MATERIALS", "Not enough lumber or stone")
	ErrVehicleNotFound    = errx.NewBiz("VEHICLE_NOT_FOUND", "Vehicle not found")
	ErrResourceNotFound   = errx.NewBiz("RESOURCE_NOT_FOUND", "Resource not found")
	ErrResourceDepleted   = errx.NewBiz("RESOURCE_DEPLETED", "Resource depleted")
	ErrCannotHarvest      = errx.NewBiz("CANNOT_HARVEST", "Vehicle cannot harvest")
	ErrCargoMismatch      = errx.NewBiz("CARGO_MISMATCH", "Vehicle carries other cargo")
	ErrUnknownCommand     = errx.NewBiz("UNKNOWN_COMMAND", "Unknown command")
)
