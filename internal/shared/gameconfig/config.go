package gameconfig

import (
	"time"
)

// Config 是一局游戏的全部静态配置，运行期只读。
// 默认值见 Default，conf.yml 的 game 节可以覆盖其中任意字段。
type Config struct {
	MapW     float64 `mapstructure:"map_w" json:"MAP_W"`
	MapH     float64 `mapstructure:"map_h" json:"MAP_H"`
	TileSize float64 `mapstructure:"tile_size" json:"TILE_SIZE"`
	TickMS   int     `mapstructure:"tick_ms" json:"TICK_MS"`

	ResourceCount  int     `mapstructure:"resource_count" json:"RESOURCE_COUNT"`
	ResourceAmount float64 `mapstructure:"resource_amount" json:"RESOURCE_AMOUNT"`
	ResourceRadius float64 `mapstructure:"resource_radius" json:"RESOURCE_RADIUS"`

	AutoTargetRadius float64 `mapstructure:"auto_target_radius" json:"AUTO_TARGET_RADIUS"`
	DockRadius       float64 `mapstructure:"dock_radius" json:"DOCK_RADIUS"`
	UnloadTimeMS     int     `mapstructure:"unload_time_ms" json:"UNLOAD_TIME"`

	EnergyMax      float64 `mapstructure:"energy_max" json:"ENERGY_MAX"`
	EnergyRecharge float64 `mapstructure:"energy_recharge" json:"ENERGY_RECHARGE"`

	StartOre    float64 `mapstructure:"start_ore" json:"START_ORE"`
	StartLumber float64 `mapstructure:"start_lumber" json:"START_LUMBER"`
	StartStone  float64 `mapstructure:"start_stone" json:"START_STONE"`

	BaseHP          float64 `mapstructure:"base_hp" json:"BASE_HP"`
	BaseDamage      float64 `mapstructure:"base_damage" json:"BASE_DAMAGE"`
	BaseROF         float64 `mapstructure:"base_rof" json:"BASE_ROF"`
	BaseAttackRange float64 `mapstructure:"base_attack_range" json:"BASE_ATTACK_RANGE"`

	NeutralBaseHP         float64 `mapstructure:"neutral_base_hp" json:"NEUTRAL_BASE_HP"`
	NeutralBaseDamage     float64 `mapstructure:"neutral_base_damage" json:"NEUTRAL_BASE_DAMAGE"`
	NeutralBaseROF        float64 `mapstructure:"neutral_base_rof" json:"NEUTRAL_BASE_ROF"`
	NeutralBaseMax        int     `mapstructure:"neutral_base_max" json:"-"`
	NeutralBaseIntervalMS int     `mapstructure:"neutral_base_interval_ms" json:"-"`

	OfflineTimeoutMS    int `mapstructure:"offline_timeout_ms" json:"OFFLINE_TIMEOUT"`
	BroadcastIntervalMS int `mapstructure:"broadcast_interval_ms" json:"-"`

	// 图鉴与解锁表的 key 区分大小写（heavyTank），viper 会把 key 转小写，因此不从 conf.yml 覆盖。
	VehicleTypes map[string]VehicleType `mapstructure:"-" json:"VEHICLE_TYPES"`
	// BaseLevelVehicles 记录每个等级新解锁的载具，实际可造集合是 1..level 的并集。
	BaseLevelVehicles map[int][]string `mapstructure:"-" json:"BASE_LEVEL_VEHICLES"`
}

// Default 返回线上默认配置。
func Default() *Config {
	return &Config{
		MapW:     4000,
		MapH:     3000,
		TileSize: 40,
		TickMS:   50,

		ResourceCount:  60,
		ResourceAmount: 1000,
		ResourceRadius: 22,

		AutoTargetRadius: 400,
		DockRadius:       30,
		UnloadTimeMS:     1000,

		EnergyMax:      100,
		EnergyRecharge: 15,

		StartOre:    1500,
		StartLumber: 0,
		StartStone:  0,

		BaseHP:          500,
		BaseDamage:      10,
		BaseROF:         1,
		BaseAttackRange: 150,

		NeutralBaseHP:         300,
		NeutralBaseDamage:     5,
		NeutralBaseROF:        1,
		NeutralBaseMax:        10,
		NeutralBaseIntervalMS: 30000,

		OfflineTimeoutMS:    60000,
		BroadcastIntervalMS: 1000,

		VehicleTypes:      defaultVehicleTypes(),
		BaseLevelVehicles: defaultBaseLevelVehicles(),
	}
}

func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// DT 是每个 tick 的固定积分步长（秒）。
func (c *Config) DT() float64 {
	return float64(c.TickMS) / 1000
}

func (c *Config) OfflineTimeout() time.Duration {
	return time.Duration(c.OfflineTimeoutMS) * time.Millisecond
}

func (c *Config) BroadcastInterval() time.Duration {
	return time.Duration(c.BroadcastIntervalMS) * time.Millisecond
}

func (c *Config) NeutralBaseInterval() time.Duration {
	return time.Duration(c.NeutralBaseIntervalMS) * time.Millisecond
}

// LevelHP 是等级 level 的基地满血值。
func (c *Config) LevelHP(level int) float64 {
	return c.BaseHP + float64(level-1)*100
}

func (c *Config) LevelDamage(level int) float64 {
	return c.BaseDamage + float64(level-1)*5
}

// UpgradeCost 返回从 level 升到 level+1 的花费。
func (c *Config) UpgradeCost(level int) (lumber, stone float64) {
	return 200 * float64(level), 150 * float64(level)
}
