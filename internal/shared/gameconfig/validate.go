package gameconfig

import (
	"errors"
	"fmt"
)

// Validate 检查配置是否自洽；启动期调用，失败即退出。
func (c *Config) Validate() error {
	var errs []error
	if c.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("tick_ms must be > 0, got %d", c.TickMS))
	}
	if c.MapW <= 0 || c.MapH <= 0 {
		errs = append(errs, fmt.Errorf("map size must be > 0, got %vx%v", c.MapW, c.MapH))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile_size must be > 0, got %v", c.TileSize))
	}
	if c.EnergyMax < 0 {
		errs = append(errs, fmt.Errorf("energy_max must be >= 0, got %v", c.EnergyMax))
	}
	if c.BroadcastIntervalMS < 0 {
		errs = append(errs, fmt.Errorf("broadcast_interval_ms must be >= 0, got %d", c.BroadcastIntervalMS))
	}
	if len(c.VehicleTypes) == 0 {
		errs = append(errs, errors.New("vehicle_types is empty"))
	}
	for key, vt := range c.VehicleTypes {
		if vt.Speed < 0 || vt.Capacity < 0 || vt.Cost < 0 || vt.HP <= 0 {
			errs = append(errs, fmt.Errorf("vehicle type %q has invalid stats", key))
		}
	}
	if len(c.BaseLevelVehicles[1]) == 0 {
		errs = append(errs, errors.New("base_level_vehicles has no level 1 entry"))
	}
	for level, list := range c.BaseLevelVehicles {
		if level < 1 {
			errs = append(errs, fmt.Errorf("base_level_vehicles level must be >= 1, got %d", level))
		}
		for _, v := range list {
			if _, ok := c.VehicleTypes[v]; !ok {
				errs = append(errs, fmt.Errorf("base_level_vehicles[%d] names unknown vehicle type %q", level, v))
			}
		}
	}
	return errors.Join(errs...)
}
