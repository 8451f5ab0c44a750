package gameconfig

import (
	"slices"
	"sort"
)

// VehicleType 是载具图鉴条目。
type VehicleType struct {
	Speed        float64 `mapstructure:"speed" json:"speed"`
	Capacity     float64 `mapstructure:"capacity" json:"capacity"`
	Cost         float64 `mapstructure:"cost" json:"cost"`
	BuildSeconds float64 `mapstructure:"build_time" json:"buildTime"`
	EnergyCost   float64 `mapstructure:"energy_cost" json:"energyCost"`
	HP           float64 `mapstructure:"hp" json:"hp"`
	Damage       float64 `mapstructure:"damage" json:"damage"`
	ROF          float64 `mapstructure:"rof" json:"rof"`
	HarvestRate  float64 `mapstructure:"harvest_rate" json:"harvestRate"`
	// UnloadTimeMS 为 nil 时使用全局 UnloadTimeMS；0 表示到站即卸。
	UnloadTimeMS *int `mapstructure:"unload_time" json:"unloadTime,omitempty"`
}

func msPtr(v int) *int { return &v }

func defaultVehicleTypes() map[string]VehicleType {
	return map[string]VehicleType{
		"scout": {
			Speed: 300, Capacity: 50, Cost: 500, BuildSeconds: 3, EnergyCost: 0.01,
			HP: 60, Damage: 2, ROF: 1, HarvestRate: 30, UnloadTimeMS: msPtr(500),
		},
		"hauler": {
			Speed: 180, Capacity: 300, Cost: 1000, BuildSeconds: 6, EnergyCost: 0.02,
			HP: 150, Damage: 0, ROF: 0, HarvestRate: 40, UnloadTimeMS: msPtr(1500),
		},
		"basic": {
			Speed: 220, Capacity: 200, Cost: 800, BuildSeconds: 5, EnergyCost: 0.02,
			HP: 100, Damage: 5, ROF: 1, HarvestRate: 40,
		},
		"transport": {
			Speed: 200, Capacity: 1000, Cost: 2000, BuildSeconds: 10, EnergyCost: 0.03,
			HP: 200, Damage: 0, ROF: 0, HarvestRate: 60, UnloadTimeMS: msPtr(0),
		},
		"heavyTank": {
			Speed: 120, Capacity: 0, Cost: 3000, BuildSeconds: 12, EnergyCost: 0.05,
			HP: 500, Damage: 25, ROF: 1, HarvestRate: 0,
		},
	}
}

func defaultBaseLevelVehicles() map[int][]string {
	return map[int][]string{
		1: {"scout"},
		2: {"hauler"},
		3: {"basic"},
		4: {"transport", "heavyTank"},
	}
}

// VehicleType 按 key 查图鉴。
func (c *Config) VehicleType(key string) (VehicleType, bool) {
	vt, ok := c.VehicleTypes[key]
	return vt, ok
}

// UnloadTime 返回某类载具的卸货时长（毫秒）。
func (c *Config) UnloadTime(vt VehicleType) int {
	if vt.UnloadTimeMS != nil {
		return *vt.UnloadTimeMS
	}
	return c.UnloadTimeMS
}

// UnlockedVehicles 返回等级 1..level 累计解锁的载具，按等级顺序去重。
func (c *Config) UnlockedVehicles(level int) []string {
	var out []string
	for l := 1; l <= level; l++ {
		for _, v := range c.BaseLevelVehicles[l] {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

func (c *Config) IsUnlocked(level int, vType string) bool {
	for l := 1; l <= level; l++ {
		if slices.Contains(c.BaseLevelVehicles[l], vType) {
			return true
		}
	}
	return false
}

// UnlockLevel 返回 vType 首次解锁的等级，未出现在解锁表中返回 0。
func (c *Config) UnlockLevel(vType string) int {
	levels := make([]int, 0, len(c.BaseLevelVehicles))
	for l := range c.BaseLevelVehicles {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		if slices.Contains(c.BaseLevelVehicles[l], vType) {
			return l
		}
	}
	return 0
}
