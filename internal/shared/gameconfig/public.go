package gameconfig

// Public 是 init 消息里下发给客户端的 cfg 块。
type Public struct {
	MapW              float64                `json:"MAP_W"`
	MapH              float64                `json:"MAP_H"`
	TileSize          float64                `json:"TILE_SIZE"`
	TickMS            int                    `json:"TICK_MS"`
	ResourceCount     int                    `json:"RESOURCE_COUNT"`
	ResourceAmount    float64                `json:"RESOURCE_AMOUNT"`
	ResourceRadius    float64                `json:"RESOURCE_RADIUS"`
	VehicleTypes      map[string]VehicleType `json:"VEHICLE_TYPES"`
	BaseLevelVehicles map[int][]string       `json:"BASE_LEVEL_VEHICLES"`
	EnergyMax         float64                `json:"ENERGY_MAX"`
	UnloadTimeMS      int                    `json:"UNLOAD_TIME"`
	BaseHP            float64                `json:"BASE_HP"`
	BaseAttackRange   float64                `json:"BASE_ATTACK_RANGE"`
}

func (c *Config) Public() Public {
	return Public{
		MapW:              c.MapW,
		MapH:              c.MapH,
		TileSize:          c.TileSize,
		TickMS:            c.TickMS,
		ResourceCount:     c.ResourceCount,
		ResourceAmount:    c.ResourceAmount,
		ResourceRadius:    c.ResourceRadius,
		VehicleTypes:      c.VehicleTypes,
		BaseLevelVehicles: c.BaseLevelVehicles,
		EnergyMax:         c.EnergyMax,
		UnloadTimeMS:      c.UnloadTimeMS,
		BaseHP:            c.BaseHP,
		BaseAttackRange:   c.BaseAttackRange,
	}
}

// ViewConfig 是 /cfg.json 返回的客户端视口配置。
type ViewConfig struct {
	ViewW            int `mapstructure:"view_w" json:"VIEW_W"`
	ViewH            int `mapstructure:"view_h" json:"VIEW_H"`
	BaseIconSize     int `mapstructure:"base_icon_size" json:"BASE_ICON_SIZE"`
	VehicleIconSize  int `mapstructure:"vehicle_icon_size" json:"VEHICLE_ICON_SIZE"`
	ResourceIconSize int `mapstructure:"resource_icon_size" json:"RESOURCE_ICON_SIZE"`
}

func DefaultView() ViewConfig {
	return ViewConfig{ViewW: 1000, ViewH: 700, BaseIconSize: 32, VehicleIconSize: 32, ResourceIconSize: 32}
}
